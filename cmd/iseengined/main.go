/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Command iseengined is the engine's demo binary: it wires an echo business
// object through config.Load, lifecycle.Controller and, when --metrics is
// set, monitor.Attach, driven by a cobra CLI.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/haoxingeng/ise-sub000/cmd/iseengined/echobiz"
	libcfg "github.com/haoxingeng/ise-sub000/config"
	"github.com/haoxingeng/ise-sub000/console"
	"github.com/haoxingeng/ise-sub000/lifecycle"
	liblog "github.com/haoxingeng/ise-sub000/logger"
	"github.com/haoxingeng/ise-sub000/monitor"
	"github.com/haoxingeng/ise-sub000/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var appVersion = version.New(
	version.LicenseMIT,
	"iseengined",
	"Pluggable UDP/TCP network service engine — echo demo",
	"2026-01-01T00:00:00Z",
	"dev",
	"1.0.0",
	"ISE Engine contributors",
)

func main() {
	var (
		configPath  string
		tcpPort     int
		metrics     bool
		metricsAddr string
	)

	root := &cobra.Command{
		Use:     "iseengined",
		Short:   "Run the ISE echo demo service",
		Version: appVersion.String(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, tcpPort, metrics, metricsAddr)
		},
	}
	root.SetVersionTemplate(appVersion.String() + "\n")

	root.Flags().StringVarP(&configPath, "config", "c", "", "path to a config file (yaml/toml/json); defaults to built-in options")
	root.Flags().IntVarP(&tcpPort, "port", "p", 12345, "TCP port the echo server listens on")
	root.Flags().BoolVar(&metrics, "metrics", false, "expose Prometheus metrics")
	root.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "address the metrics HTTP server listens on")

	root.SetHelpTemplate(appVersion.Help() + "\n\n{{.UsageString}}")

	if err := root.Execute(); err != nil {
		console.Line(console.KindFail, "%v", err)
		os.Exit(1)
	}
}

func run(configPath string, tcpPort int, metrics bool, metricsAddr string) error {
	console.Banner(appVersion.Package, appVersion.Release, appVersion.Build, appVersion.License.String())

	log := liblog.New()
	defer log.Close()

	biz := echobiz.New(log, appVersion, tcpPort)

	opt := libcfg.Default()
	if configPath != "" {
		loaded, err := libcfg.Load(configPath)
		if err != nil {
			console.Line(console.KindFail, "loading config: %v", err)
			return err
		}
		opt = loaded
	}

	ctrl := lifecycle.New(opt, biz, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := ctrl.Initialize(ctx); err != nil {
		console.Line(console.KindFail, "initialize failed: %v", err)
		return err
	}

	if metrics {
		reg := prometheus.NewRegistry()
		monitor.Attach(reg, ctrl)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: metricsAddr, Handler: mux}
		go func() {
			console.Line(console.KindInfo, "metrics listening on %s", metricsAddr)
			_ = srv.ListenAndServe()
		}()
		go func() {
			<-ctx.Done()
			_ = srv.Close()
		}()
	}

	console.Line(console.KindOK, "listening on tcp :%d", tcpPort)
	ctrl.Run(ctx)
	cancel()

	if err := ctrl.Finalize(context.Background()); err != nil {
		console.Line(console.KindFail, "finalize failed: %v", err)
		return err
	}

	fmt.Fprintln(os.Stderr, "shutdown complete")
	return nil
}
