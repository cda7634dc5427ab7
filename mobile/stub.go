//go:build !mobile

// stub.go - 桌面端构建时的占位文件
//
// 桌面端 go build ./... 与 go test ./... 会扫描到 mobile 包；
// 没有 -tags mobile 时，mobile.go/embed.go 都不参与编译，包里必须至少有一个文件。
package mobile

// Dummy 桌面端占位导出；ebitenmobile bind 只在 -tags mobile 下使用 SetGame 入口
func Dummy() {}
