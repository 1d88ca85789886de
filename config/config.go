package config

import (
	"context"
	"fmt"
)

// New 创建配置加载器
//
// 创建后需要调用 Load 才会真正读取配置：
//
//	loader, err := config.New(config.WithConfigName("config"))
//	if err != nil {
//	    return err
//	}
//	if err := loader.Load(ctx); err != nil {
//	    return err
//	}
func New(opts ...Option) (Loader, error) {
	return newLoader(opts...)
}

// MustLoad 一步创建、加载并验证配置，失败时 panic
//
// 仅用于程序初始化阶段：
//
//	loader := config.MustLoad(
//	    config.WithConfigName("config"),
//	    config.WithConfigPaths("./config"),
//	)
func MustLoad(opts ...Option) Loader {
	loader, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create config loader: %v", err))
	}
	if err := loader.Load(context.Background()); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	if err := loader.Validate(); err != nil {
		panic(fmt.Sprintf("invalid config: %v", err))
	}
	return loader
}
