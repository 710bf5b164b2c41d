// Package web 内嵌聊天页面模板与静态资源，服务运行时不依赖工作目录。
package web

import "embed"

// FS 包含 template/ 与 static/ 两个目录
//
//go:embed template/*.html static/*
var FS embed.FS
