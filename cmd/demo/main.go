package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/midbel/sketch"
	"github.com/midbel/sketch/raster"
	"github.com/midbel/sketch/svgr"
	"github.com/midbel/sketch/win"
)

const (
	defaultWidth  = 900
	defaultHeight = 600
)

func main() {
	var (
		theme  = flag.String("theme", "dark", "theme (dark, light)")
		export = flag.String("export", "", "write charts to directory instead of opening a window")
		format = flag.String("format", "png", "export format (png, svg)")
		width  = flag.Int("width", defaultWidth, "chart width")
		height = flag.Int("height", defaultHeight, "chart height")
	)
	flag.Parse()

	th := sketch.Dark()
	if *theme == "light" {
		th = sketch.Light()
	}
	charts := []sketch.Widget{
		lineDemo(th),
		barDemo(th),
		circularDemo(th),
		heatmapDemo(th),
		sparklineDemo(th),
	}
	if *export != "" {
		if err := exportAll(*export, *format, charts, *width, *height); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	opts := win.Options{
		Title:  "sketch demo (tab switches charts)",
		Width:  *width,
		Height: *height,
	}
	if err := win.Run(opts, charts...); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type exporter interface {
	Export(sketch.Canvas)
	Resize(w, h float64)
}

func exportAll(dir, format string, charts []sketch.Widget, w, h int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	names := []string{"line", "bar", "circular", "heatmap", "sparkline"}
	for i, c := range charts {
		ex, ok := c.(exporter)
		if !ok {
			continue
		}
		var (
			file = filepath.Join(dir, names[i]+"."+format)
			err  error
		)
		if format == "svg" {
			err = svgr.SaveSVG(file, ex, w, h)
		} else {
			err = raster.SavePNG(file, ex, w, h)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func lineDemo(th sketch.Theme) sketch.Widget {
	c := sketch.NewLineChart(th)
	c.Title = "Request latency"
	c.Subtitle = "per region, last hour"

	fast := sketch.NewSerie("eu-west", sketch.Category10.Color(0))
	slow := sketch.NewSerie("us-east", sketch.Category10.Color(1))
	fast.FillArea = true
	for i := 0; i < 48; i++ {
		x := float64(i)
		fast.Append(sketch.NumberPoint(x, 40+18*math.Sin(x/5)+6*math.Sin(x/1.7)))
		slow.Append(sketch.NumberPoint(x, 70+25*math.Sin(x/7+1)+4*math.Cos(x/2.3)))
	}
	c.SetData([]sketch.Serie{fast, slow})
	return c
}

func barDemo(th sketch.Theme) sketch.Widget {
	c := sketch.NewBarChart(th)
	c.Title = "Deploys per weekday"
	c.Mode = sketch.BarStacked
	for i, day := range []string{"mon", "tue", "wed", "thu", "fri"} {
		c.SetValue(day, "api", float64(12+i*3))
		c.SetValue(day, "web", float64(8+(i*7)%11))
		c.SetValue(day, "batch", float64(3+(i*5)%6))
	}
	return c
}

func circularDemo(th sketch.Theme) sketch.Widget {
	c := sketch.NewCircularChart(th)
	c.Title = "Storage by tier"
	c.Mode = sketch.Donut
	c.AddValue("hot", 420)
	c.AddValue("warm", 310)
	c.AddValue("cold", 180)
	c.AddValue("archive", 90)
	return c
}

func heatmapDemo(th sketch.Theme) sketch.Widget {
	c := sketch.NewHeatmapWidget(th)
	c.Title = "Traffic by hour"
	var (
		rows   = 7
		cols   = 24
		matrix = make([][]float64, rows)
		days   = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}
		hours  = make([]string, cols)
	)
	for j := range hours {
		hours[j] = fmt.Sprintf("%02d", j)
	}
	for i := range matrix {
		matrix[i] = make([]float64, cols)
		for j := range matrix[i] {
			day := 1.0
			if i >= 5 {
				day = 0.4
			}
			matrix[i][j] = day * (20 + 60*math.Exp(-math.Pow(float64(j)-13, 2)/18))
		}
	}
	c.SetData(matrix, days, hours)
	c.EnableClustering(15)
	return c
}

func sparklineDemo(th sketch.Theme) sketch.Widget {
	c := sketch.NewSparklineWidget(th)
	c.Kind = sketch.SparkArea
	c.Resize(320, 96)
	for i := 0; i < 90; i++ {
		x := float64(i)
		c.Append(50 + 20*math.Sin(x/9) + 8*math.Sin(x/2.1))
	}
	return c
}
