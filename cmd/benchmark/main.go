package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	frp "github.com/delaneyj/frpparty"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	profileKey = "profile"
	itersKey   = "iters"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure push propagation latency across graph shapes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this file",
			},
			&cli.UintFlag{
				Name:  itersKey,
				Usage: "Pushes per configuration",
				Value: 1000,
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

var (
	ww = []int{1, 10, 100}
	hh = []int{1, 10, 100}
)

func run(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	iters := int(cmd.Uint(itersKey))
	log.Printf("warming up")
	benchmarkStreams(1, 1, 10, nil)

	benchmarkStreamTable(iters)
	benchmarkBehaviorTable(iters)
	return nil
}

func benchmarkStreamTable(iters int) {
	tbl := table.NewWriter()
	tbl.SetTitle("Stream propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})
			sum := benchmarkStreams(w, h, iters, tach)
			m := tach.Calc()
			tbl.AppendRow(table.Row{
				fmt.Sprintf("map chain %dx%d (sum %d)", w, h, sum),
				m.Time.Avg, m.Time.Min, m.Time.P75, m.Time.P99, m.Time.Max,
			})
		}
	}
	tbl.Render()
}

// benchmarkStreams pushes through w parallel chains of h maps hanging off a
// single sink and reports the subscriber-side sum.
func benchmarkStreams(w, h, iters int, tach *tachymeter.Tachymeter) int {
	src := frp.SinkS[int]()
	sum := 0
	for i := 0; i < w; i++ {
		cur := src.Stream
		for j := 0; j < h; j++ {
			cur = frp.MapS(func(x int) int { return x + 1 }, cur)
		}
		cur.Subscribe(func(v int) { sum += v })
	}

	for i := 0; i < iters; i++ {
		start := time.Now()
		src.Push(i)
		if tach != nil {
			tach.AddTime(time.Since(start))
		}
	}
	return sum
}

func benchmarkBehaviorTable(iters int) {
	tbl := table.NewWriter()
	tbl.SetTitle("Behavior propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, h := range hh {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})
		last := benchmarkBehaviors(h, iters, tach)
		m := tach.Calc()
		tbl.AppendRow(table.Row{
			fmt.Sprintf("lift chain x%d (last %d)", h, last),
			m.Time.Avg, m.Time.Min, m.Time.P75, m.Time.P99, m.Time.Max,
		})
	}
	tbl.Render()
}

// benchmarkBehaviors publishes through a chain of h lifted additions over two
// sinks and reports the last observed value.
func benchmarkBehaviors(h, iters int, tach *tachymeter.Tachymeter) int {
	a := frp.SinkB(0)
	b := frp.SinkB(1)
	cur := a.Behavior
	for j := 0; j < h; j++ {
		cur = frp.Lift2(func(x, y int) int { return x + y }, cur, b)
	}
	last := 0
	cur.Subscribe(func(v int) { last = v })

	for i := 0; i < iters; i++ {
		start := time.Now()
		a.Publish(i)
		if tach != nil {
			tach.AddTime(time.Since(start))
		}
	}
	return last
}
