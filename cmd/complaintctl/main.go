// complaintctl 是投诉管理接口的终端前端。
//
//	complaintctl [-yes] departments|issues list|get|create|update|delete [args]
//	complaintctl [-yes] complaints list|get|create|update|delete|export [flags] [args]
//
// 接口地址与超时从环境变量 COMPLAINTCTL_URL、COMPLAINTCTL_TIMEOUT 读取。
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/ardanlabs/conf"

	"complaint-desk/internal/client"
)

type settings struct {
	URL     string        `conf:"default:http://localhost:4000/api"`
	Timeout time.Duration `conf:"default:10s"`
}

func main() {
	var cfg settings
	if err := conf.Parse(nil, "COMPLAINTCTL", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "读取配置失败: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := client.New(cfg.URL, client.WithTimeout(cfg.Timeout))
	app := newApp(c, os.Stdin, os.Stdout, os.Stderr)
	os.Exit(app.run(ctx, os.Args[1:]))
}
