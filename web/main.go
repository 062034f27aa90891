package main

import (
	"log"
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-shadow-raytracer/web/server"
)

func main() {
	app := cli.NewApp()
	app.Name = "go-shadow-raytracer-web"
	app.Usage = "serve raytracer previews over HTTP and websockets"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "port",
			Value: 8080,
			Usage: "port to serve on",
		},
		cli.StringFlag{
			Name:  "scenes",
			Value: "scenes",
			Usage: "directory of JSON scene files",
		},
	}
	app.Action = func(c *cli.Context) error {
		webServer := server.NewServer(c.Int("port"), c.String("scenes"))

		log.Printf("Shadow Raytracer Web Server")
		log.Printf("Try http://localhost:%d/api/render?scene=default", c.Int("port"))

		return webServer.Start()
	}

	if err := app.Run(os.Args); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
