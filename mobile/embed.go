//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// mobile/data/scene.yaml 是根目录 data/scene.yaml 的副本，修改配置后需要同步：
//
//	cp data/scene.yaml mobile/data/
package mobile

import "embed"

//go:embed data/scene.yaml
var dataFS embed.FS
