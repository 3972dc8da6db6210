package main

import (
	"os"

	"quill/cmd"
)

// @title           Quill API
// @version         1.0
// @description     博客内容管理服务：文章、认证、管理后台与 AI 标签/摘要生成
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
