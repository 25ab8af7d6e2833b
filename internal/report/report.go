// Package report renders a recorded monitoring session into a paginated PDF:
// a summary table, one line chart per metric channel, and per-channel
// statistics.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/jung-kurt/gofpdf"

	"github.com/seojin-dev/resmon/internal/history"
	"github.com/seojin-dev/resmon/internal/stats"
)

// ErrEmptyHistory is returned when there is nothing to export.
var ErrEmptyHistory = errors.New("history is empty")

const bytesPerMB = 1024 * 1024

// Generator writes session reports into a fixed output directory.
type Generator struct {
	log    hclog.Logger
	outDir string
}

func NewGenerator(log hclog.Logger, outDir string) *Generator {
	return &Generator{log: log, outDir: outDir}
}

// Export renders the channel data into a timestamped PDF and returns its
// path. The caller's History and session state are never touched; a failed
// export leaves nothing but a possibly partial file behind.
func (g *Generator) Export(ch history.Channels) (string, error) {
	if ch.Len() == 0 {
		return "", ErrEmptyHistory
	}

	name := fmt.Sprintf("resmon_report_%s.pdf", time.Now().Format("20060102_150405"))
	path := filepath.Join(g.outDir, name)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	g.summaryPage(pdf, tr, ch)
	g.chartPages(pdf, tr, ch)
	g.statisticsPage(pdf, tr, ch)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write report %s: %w", path, err)
	}
	g.log.Info("report written", "path", path, "samples", ch.Len())
	return path, nil
}

func (g *Generator) summaryPage(pdf *gofpdf.Fpdf, tr func(string) string, ch history.Channels) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(31, 119, 180)
	pdf.CellFormat(0, 14, "System Resource Monitoring Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, "Generated: "+time.Now().Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	heading(pdf, "1. Monitoring Summary")

	first := ch.Timestamps[0]
	last := ch.Timestamps[ch.Len()-1]
	rows := [][2]string{
		{"Monitoring duration", fmt.Sprintf("%.1f s", last.Sub(first).Seconds())},
		{"Data points", fmt.Sprintf("%d", ch.Len())},
		{"Start time", first.Format("2006-01-02 15:04:05")},
		{"End time", last.Format("2006-01-02 15:04:05")},
	}

	pdf.SetFillColor(236, 240, 241)
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(70, 10, tr(row[0]), "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(110, 10, tr(row[1]), "1", 1, "L", true, 0, "")
	}
}

// chartPages lays out two panels per page. Channels that never produced a
// real reading get a placeholder box rather than a misleading flat line.
func (g *Generator) chartPages(pdf *gofpdf.Fpdf, tr func(string) string, ch history.Channels) {
	pdf.AddPage()
	heading(pdf, "2. Resource Usage Charts")

	xs := ch.Elapsed

	type panel struct {
		title       string
		yLabel      string
		yMax        float64
		unavailable string // non-empty renders a placeholder
		series      []series
	}

	panels := []panel{
		{title: "CPU Usage", yLabel: "percent", yMax: 100,
			series: []series{{"cpu", ch.CPUPercent}}},
		{title: "Memory Usage", yLabel: "percent", yMax: 100,
			series: []series{{"memory", ch.MemoryPercent}}},
		{title: "Disk I/O", yLabel: "MB/s",
			series: []series{{"read", scale(ch.DiskRead, bytesPerMB)}, {"write", scale(ch.DiskWrite, bytesPerMB)}}},
		{title: "Network Traffic", yLabel: "MB/s",
			series: []series{{"sent", scale(ch.NetSent, bytesPerMB)}, {"recv", scale(ch.NetRecv, bytesPerMB)}}},
		{title: "System Temperature", yLabel: "Celsius",
			series: []series{{"temperature", ch.Temperature}}},
		{title: "GPU Usage", yLabel: "percent", yMax: 100,
			series: []series{{"gpu", ch.GPUUsage}}},
	}
	if !ch.TemperatureSeen {
		panels[4].unavailable = "Temperature sensors unavailable"
	}
	if !ch.GPUSeen {
		panels[5].unavailable = "GPU unavailable"
	}

	const chartW, chartH = 267.0, 78.0
	perPage := 0
	for _, p := range panels {
		if perPage == 2 {
			pdf.AddPage()
			perPage = 0
		}

		if p.unavailable != "" {
			g.placeholder(pdf, tr, p.title, p.unavailable, chartW, chartH)
			perPage++
			continue
		}

		png, err := renderLineChart(p.title, p.yLabel, xs, p.yMax, p.series...)
		if err != nil {
			// Too few points to chart; fall back to a placeholder so the
			// panel is still visibly accounted for.
			g.log.Warn("chart skipped", "panel", p.title, "error", err)
			g.placeholder(pdf, tr, p.title, "Not enough data points to chart", chartW, chartH)
			perPage++
			continue
		}

		imgName := "chart-" + p.title
		pdf.RegisterImageOptionsReader(imgName,
			gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
		pdf.ImageOptions(imgName, 15, pdf.GetY(), chartW, chartH, false,
			gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		pdf.SetY(pdf.GetY() + chartH + 4)
		perPage++
	}
}

func (g *Generator) placeholder(pdf *gofpdf.Fpdf, tr func(string) string, title, msg string, w, h float64) {
	y := pdf.GetY()
	pdf.SetDrawColor(189, 195, 199)
	pdf.Rect(15, y, w, h, "D")
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetXY(15, y+h/2-10)
	pdf.CellFormat(w, 8, tr(title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 11)
	pdf.SetTextColor(127, 140, 141)
	pdf.SetX(15)
	pdf.CellFormat(w, 8, tr(msg), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(y + h + 4)
}

func (g *Generator) statisticsPage(pdf *gofpdf.Fpdf, tr func(string) string, ch history.Channels) {
	pdf.AddPage()
	heading(pdf, "3. Detailed Statistics")

	type row struct {
		label     string
		values    []float64
		available bool
	}
	rows := []row{
		{"CPU usage (%)", ch.CPUPercent, true},
		{"Memory usage (%)", ch.MemoryPercent, true},
		{"Disk read (MB/s)", scale(ch.DiskRead, bytesPerMB), true},
		{"Disk write (MB/s)", scale(ch.DiskWrite, bytesPerMB), true},
		{"Network sent (MB/s)", scale(ch.NetSent, bytesPerMB), true},
		{"Network recv (MB/s)", scale(ch.NetRecv, bytesPerMB), true},
		{"Temperature (°C)", ch.Temperature, ch.TemperatureSeen},
		{"GPU usage (%)", ch.GPUUsage, ch.GPUSeen},
	}

	colW := []float64{70, 38, 38, 38, 38}
	headers := []string{"Channel", "Mean", "Min", "Max", "Stdev"}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(52, 152, 219)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(colW[i], 10, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(236, 240, 241)
	for _, r := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(colW[0], 9, tr(r.label), "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		if !r.available {
			for i := 1; i < len(colW); i++ {
				pdf.CellFormat(colW[i], 9, "n/a", "1", 0, "C", true, 0, "")
			}
			pdf.Ln(-1)
			continue
		}
		sum := stats.Summarize(r.values)
		for i, v := range []float64{sum.Mean, sum.Min, sum.Max, sum.Stdev} {
			pdf.CellFormat(colW[i+1], 9, fmt.Sprintf("%.2f", v), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(44, 62, 80)
	pdf.CellFormat(0, 10, text, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)
}
