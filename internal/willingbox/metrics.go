package willingbox

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	boxesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "willingbox_boxes_created_total",
			Help: "Total number of weekly willing boxes created",
		},
	)

	wishListsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "willingbox_wish_lists_submitted_total",
			Help: "Total number of wish lists submitted",
		},
		[]string{"slot"},
	)

	selectionsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "willingbox_selections_submitted_total",
			Help: "Total number of willing selections submitted",
		},
		[]string{"slot"},
	)

	boxesLocked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "willingbox_boxes_locked_total",
			Help: "Total number of boxes locked after both selections arrived",
		},
	)

	guessSetsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "willingbox_guess_sets_submitted_total",
			Help: "Total number of guess sets submitted",
		},
		[]string{"slot"},
	)

	scoresFinalized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "willingbox_scores_finalized_total",
			Help: "Total number of weekly scores finalized",
		},
	)

	weeklyScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "willingbox_weekly_score_points",
			Help:    "Distribution of finalized per-partner weekly scores",
			Buckets: prometheus.LinearBuckets(0, 1, 7),
		},
	)
)

func recordBoxCreated() {
	boxesCreated.Inc()
}

func recordWishList(slot PartnerSlot) {
	wishListsSubmitted.WithLabelValues(string(slot)).Inc()
}

func recordSelection(slot PartnerSlot, locked bool) {
	selectionsSubmitted.WithLabelValues(string(slot)).Inc()
	if locked {
		boxesLocked.Inc()
	}
}

func recordGuessSet(slot PartnerSlot) {
	guessSetsSubmitted.WithLabelValues(string(slot)).Inc()
}

func recordFinalizedScore(scores ScorePair) {
	scoresFinalized.Inc()
	weeklyScores.Observe(float64(scores.ScoreA))
	weeklyScores.Observe(float64(scores.ScoreB))
}
