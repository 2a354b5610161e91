package event

import (
	"github.com/blues/fundsy/internal/logger"
	"github.com/blues/fundsy/internal/model"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// Recorder 领域事件记录器。
// 事件写入在协程池中异步执行，不阻塞业务路径；池满时降级为同步写入。
type Recorder struct {
	db   *gorm.DB
	pool *ants.Pool
}

// NewRecorder 创建事件记录器
func NewRecorder(db *gorm.DB, workers int) (*Recorder, error) {
	if workers <= 0 {
		workers = 4
	}

	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}

	return &Recorder{db: db, pool: pool}, nil
}

// Record 记录一条领域事件
func (r *Recorder) Record(entityType string, entityId int64, eventType, data string) {
	ev := model.EventModel{
		EntityType: entityType,
		EntityId:   entityId,
		EventType:  eventType,
		Data:       data,
	}

	write := func() {
		if err := r.db.Create(&ev).Error; err != nil {
			logger.Error("Failed to record event %s for %s %d: %v",
				eventType, entityType, entityId, err)
		}
	}

	if err := r.pool.Submit(write); err != nil {
		write()
	}
}

// Close 释放协程池
func (r *Recorder) Close() {
	r.pool.Release()
}
