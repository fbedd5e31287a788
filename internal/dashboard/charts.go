package dashboard

import (
	"github.com/google/uuid"

	"github.com/evcraddock/sentiboard/internal/comment"
)

// ChartConfig is a Chart.js configuration object.
type ChartConfig struct {
	Type    string         `json:"type"`
	Data    ChartData      `json:"data"`
	Options map[string]any `json:"options"`
}

// ChartData holds labels and series.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one chart series. BackgroundColor is either a single colour
// or one colour per point.
type Dataset struct {
	Label           string `json:"label,omitempty"`
	Data            []int  `json:"data"`
	BackgroundColor any    `json:"backgroundColor"`
	BorderColor     string `json:"borderColor,omitempty"`
	BorderWidth     int    `json:"borderWidth,omitempty"`
}

// ChartInstance is a live chart. The browser keeps one canvas chart per
// ID: a known ID with a higher Revision is updated in place, a new ID
// means destroy and recreate.
type ChartInstance struct {
	ID       string      `json:"id"`
	Revision int         `json:"revision"`
	Config   ChartConfig `json:"config"`
}

func sentimentLabels() []string {
	labels := make([]string, len(comment.Sentiments))
	for i, s := range comment.Sentiments {
		labels[i] = s.Label()
	}
	return labels
}

// SentimentChart is the doughnut of [positive, negative, neutral]. It is
// constructed on first use and updated in place afterwards.
type SentimentChart struct {
	instance *ChartInstance
}

// Update feeds new counts into the chart and returns a copy of the instance.
func (c *SentimentChart) Update(counts comment.Counts) ChartInstance {
	data := []int{counts.Positive, counts.Negative, counts.Neutral}
	if c.instance != nil {
		c.instance.Config.Data.Datasets[0].Data = data
		c.instance.Revision++
		return c.Instance()
	}

	colors := make([]string, len(comment.Sentiments))
	for i, s := range comment.Sentiments {
		colors[i] = s.Color()
	}
	c.instance = &ChartInstance{
		ID: uuid.New().String(),
		Config: ChartConfig{
			Type: "doughnut",
			Data: ChartData{
				Labels: sentimentLabels(),
				Datasets: []Dataset{{
					Data:            data,
					BackgroundColor: colors,
					BorderColor:     "#fff",
					BorderWidth:     4,
				}},
			},
			Options: map[string]any{
				"responsive":          true,
				"maintainAspectRatio": false,
				"cutout":              "70%",
				"plugins": map[string]any{
					"legend": map[string]any{
						"position": "bottom",
						"labels": map[string]any{
							"usePointStyle": true,
							"pointStyle":    "circle",
							"padding":       20,
						},
					},
				},
			},
		},
	}
	return c.Instance()
}

// Instance returns a copy of the current chart, or the zero value if it
// has not been built yet.
func (c *SentimentChart) Instance() ChartInstance {
	if c.instance == nil {
		return ChartInstance{}
	}
	inst := *c.instance
	ds := inst.Config.Data.Datasets[0]
	ds.Data = append([]int(nil), ds.Data...)
	inst.Config.Data.Datasets = []Dataset{ds}
	return inst
}

// ProvisionGroup is the sentiment breakdown for one provision.
type ProvisionGroup struct {
	Provision string
	Counts    comment.Counts
}

// GroupByProvision counts sentiments per provision, in order of first
// appearance.
func GroupByProvision(comments []comment.Comment) []ProvisionGroup {
	index := make(map[string]int)
	var groups []ProvisionGroup
	for _, c := range comments {
		i, ok := index[c.Provision]
		if !ok {
			i = len(groups)
			index[c.Provision] = i
			groups = append(groups, ProvisionGroup{Provision: c.Provision})
		}
		switch c.Sentiment {
		case comment.Positive:
			groups[i].Counts.Positive++
		case comment.Negative:
			groups[i].Counts.Negative++
		case comment.Neutral:
			groups[i].Counts.Neutral++
		}
	}
	return groups
}

// ProvisionChart is the stacked bar report. Every Render destroys the
// previous instance and builds a new one.
type ProvisionChart struct {
	instance *ChartInstance
}

// Render rebuilds the chart from all comments.
func (c *ProvisionChart) Render(comments []comment.Comment) ChartInstance {
	groups := GroupByProvision(comments)

	labels := make([]string, len(groups))
	for i, g := range groups {
		labels[i] = g.Provision
	}

	datasets := make([]Dataset, 0, len(comment.Sentiments))
	for _, s := range comment.Sentiments {
		data := make([]int, len(groups))
		for i, g := range groups {
			data[i] = g.Counts.Of(s)
		}
		datasets = append(datasets, Dataset{
			Label:           s.Label(),
			Data:            data,
			BackgroundColor: s.Color(),
		})
	}

	c.instance = &ChartInstance{
		ID: uuid.New().String(),
		Config: ChartConfig{
			Type: "bar",
			Data: ChartData{Labels: labels, Datasets: datasets},
			Options: map[string]any{
				"responsive":          true,
				"maintainAspectRatio": false,
				"scales": map[string]any{
					"x": map[string]any{"stacked": true},
					"y": map[string]any{"stacked": true, "beginAtZero": true},
				},
				"plugins": map[string]any{
					"legend": map[string]any{"position": "bottom"},
				},
			},
		},
	}
	return *c.instance
}
