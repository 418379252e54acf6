package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	frp "github.com/delaneyj/frpparty"
)

// A small sensor pipeline: a pushed temperature behavior, a calibrated view,
// a moment deriving a status from whatever it reads, and an alert stream
// folded into a running count.
func main() {
	log.Printf("wiring the sensor graph")

	temperature := frp.SinkB(20.0)
	offset := frp.SinkB(0.5)
	calibrated := frp.Lift2(func(t, c float64) float64 { return t + c }, temperature, offset)

	status := frp.Moment(func() string {
		if frp.At[float64](calibrated) > 25 {
			return "hot"
		}
		return "ok"
	})
	status.Subscribe(func(string) {})

	readings := frp.SinkS[float64]()
	alerts := frp.Filter(func(v float64) bool { return v > 25 }, readings)
	alertCount := frp.Current[int](frp.Scan(func(_ float64, n int) int { return n + 1 }, 0, alerts))

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"step", "reading", "calibrated", "status", "alerts", "readings so far"})

	samples := []float64{21.3, 24.9, 26.1, 27.8, 23.2, 29.4}
	total := int64(0)
	for i, v := range samples {
		readings.Push(v)
		temperature.Publish(v)
		total++
		tbl.Append([]string{
			fmt.Sprint(i + 1),
			humanize.Ftoa(v),
			humanize.Ftoa(frp.At[float64](calibrated)),
			frp.At[string](status),
			fmt.Sprint(frp.At[int](alertCount)),
			humanize.Comma(total),
		})
	}
	tbl.Render()

	log.Printf("final calibrated reading: %s", humanize.Ftoa(frp.At[float64](calibrated)))
}
