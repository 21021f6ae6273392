package main

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	klog.InitFlags(goflag.CommandLine)
	pflag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	defer klog.Flush()

	var (
		port      int
		scenesDir string
	)

	cmd := &cobra.Command{
		Use:   "raytracer-web",
		Short: "Whitted Raytracer Web Server",
		RunE: func(cmd *cobra.Command, args []string) error {
			webServer := server.NewServer(port, scenesDir)

			klog.Infof("Whitted Raytracer Web Server")
			klog.Infof("Visit http://localhost:%d to start rendering", port)
			return webServer.Start()
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "Port to serve on")
	cmd.Flags().StringVar(&scenesDir, "scenes-dir", "", "Directory of YAML scene files (default ./scenes or ../scenes)")

	if err := cmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
