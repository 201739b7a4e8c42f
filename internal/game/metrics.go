package game

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// EditMetrics — Prometheus-метрики операций редактирования.
// Регистрация в дефолтном регистре выполняется один раз на процесс,
// сколько бы редакторов ни создавалось.
type EditMetrics struct {
	blocksTotal   prometheus.Gauge
	placedTotal   prometheus.Counter
	removedTotal  prometheus.Counter
	rejectedTotal *prometheus.CounterVec
	clearsTotal   prometheus.Counter
	loadsTotal    prometheus.Counter
	savesTotal    prometheus.Counter
}

var (
	editMetricsOnce sync.Once
	editMetrics     *EditMetrics
)

func newEditMetrics() *EditMetrics {
	editMetricsOnce.Do(func() {
		editMetrics = &EditMetrics{
			blocksTotal: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "voxel",
				Name:      "blocks_total",
				Help:      "Текущее количество блоков в сетке.",
			}),
			placedTotal: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "voxel",
				Name:      "blocks_placed_total",
				Help:      "Общее число успешных установок блоков.",
			}),
			removedTotal: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "voxel",
				Name:      "blocks_removed_total",
				Help:      "Общее число успешных удалений блоков.",
			}),
			rejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "voxel",
				Name:      "edits_rejected_total",
				Help:      "Отклонённые операции редактирования по причинам.",
			}, []string{"reason"}),
			clearsTotal: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "voxel",
				Name:      "grid_clears_total",
				Help:      "Число подтверждённых очисток сетки.",
			}),
			loadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "voxel",
				Name:      "grid_loads_total",
				Help:      "Число успешных загрузок сохранения.",
			}),
			savesTotal: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "voxel",
				Name:      "grid_saves_total",
				Help:      "Число успешных сохранений.",
			}),
		}

		prometheus.MustRegister(
			editMetrics.blocksTotal,
			editMetrics.placedTotal,
			editMetrics.removedTotal,
			editMetrics.rejectedTotal,
			editMetrics.clearsTotal,
			editMetrics.loadsTotal,
			editMetrics.savesTotal,
		)
	})
	return editMetrics
}
