package config

type JwtConfig struct {
	Secret string `yaml:"secret"`
	// ExpireTime token有效期，单位天
	ExpireTime int `yaml:"expire-time"`
}
