package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"astrolink/app"
	"astrolink/base"
	"astrolink/pkg/core/start"
	"astrolink/pkg/db"
	"astrolink/pkg/kv"
	"astrolink/pkg/scheduler"
	"astrolink/router"
)

func main() {
	env, filename := getBaseInfo()

	file, err := os.ReadFile(filename)
	if err != nil {
		panic(fmt.Sprintf("读取配置文件失败,因为：%v", err))
	}

	configures := start.NewConfigures(file, env)
	base.Configures = configures
	base.Logger = configures.Logger
	base.ENV = env
	base.UserAuth = configures.UserAuth

	base.DB = configures.EnableMysql()

	// 执行数据库迁移
	if err := db.AutoMigrate(base.DB); err != nil {
		configures.Logger.Panic(fmt.Sprintf("数据库迁移失败: %v", err))
	}

	base.RDB = configures.EnableRedis()
	base.KV = kv.NewRedisStore(base.RDB)
	base.Cache = configures.EnableCache(base.RDB)
	base.Locker = configures.EnableLocker(base.RDB)
	base.Scheduler = scheduler.NewScheduler(base.Locker)

	// 创建应用组合根
	appRoot := app.NewApp()
	defer appRoot.Close()

	// 初始化内置套餐（FREE/PRO）
	if err := appRoot.UserModule.EnsureBootstrapPlans(context.Background()); err != nil {
		configures.Logger.Panic(fmt.Sprintf("初始化内置套餐失败: %v", err))
	}

	// 注册点击聚合与过期清理批任务
	if err := appRoot.ShortURLModule.RegisterJobs(base.Scheduler); err != nil {
		configures.Logger.Panic(fmt.Sprintf("注册批处理任务失败: %v", err))
	}
	base.Scheduler.Start()
	defer base.Scheduler.Stop()

	// 创建 Fiber 应用
	fiberApp := start.GetApp()

	// 注册路由
	router.Register(appRoot, fiberApp)

	log.Fatal(fiberApp.Listen(fmt.Sprintf(":%d", base.Configures.Config.Port)))
}

func getBaseInfo() (string, string) {
	// 定义命令行参数
	env := flag.String("env", "dev", "环境配置 (dev, prod, test等)")
	configFile := flag.String("config", "", "配置文件路径，默认为 ./resources/{env}.yaml")

	// 解析命令行参数
	flag.Parse()

	// 如果没有指定配置文件路径，则使用默认路径
	var filename string
	if *configFile == "" {
		getwd, err := os.Getwd()
		if err != nil {
			panic(fmt.Sprintf("获取当前文件位置失败,因为：%v", err))
		}
		filename = getwd + "/resources/" + *env + ".yaml"
	} else {
		filename = *configFile
	}
	return *env, filename
}
