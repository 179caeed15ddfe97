package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	charactersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chronicle_characters_created_total",
		Help: "Total number of characters created.",
	})

	scenesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chronicle_scenes_created_total",
			Help: "Total number of scenes created, by kind (first or evolved).",
		},
		[]string{"kind"},
	)

	editVerdictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chronicle_edit_verdicts_total",
			Help: "Total number of edit validations by verdict and edit type.",
		},
		[]string{"verdict", "edit_type"},
	)

	recapsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chronicle_recaps_total",
			Help: "Total number of recap requests by source (generated, cached, empty).",
		},
		[]string{"source"},
	)
)
