package charts

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
)

// minShare - доля, ниже которой сектор не рисуется, чтобы подписи не слипались
const minShare = 1.0

// Slice - один сектор круговой диаграммы
type Slice struct {
	Label string
	Value float64
}

// ChartGenerator генерирует различные типы графиков
type ChartGenerator struct{}

// NewChartGenerator создает новый генератор графиков
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{}
}

// GenerateCategoryPieChart создает круговую диаграмму распределения по категориям
func (g *ChartGenerator) GenerateCategoryPieChart(title string, slices []Slice) ([]byte, error) {
	total := 0.0
	for _, slice := range slices {
		if slice.Value > 0 {
			total += slice.Value
		}
	}
	if total == 0 {
		return nil, errors.New("no data for pie chart")
	}

	values := make([]chart.Value, 0, len(slices))
	for _, slice := range slices {
		percentage := (slice.Value / total) * 100
		if percentage <= minShare {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", slice.Label, percentage),
			Value: slice.Value,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		})
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render category pie chart: %w", err)
	}

	return buffer.Bytes(), nil
}
