package queue_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/intake/internal/adapters/mq/queue"
	"github.com/okian/intake/internal/domain/model"
)

func task(id string) queue.Task {
	return queue.NewTask(model.Event{EventID: id, Kind: model.EventView})
}

func TestInMemoryQueue(t *testing.T) {
	convey.Convey("Given a queue with capacity 2", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(2))

		convey.So(q.Cap(), convey.ShouldEqual, 2)
		convey.So(q.Len(ctx), convey.ShouldEqual, 0)

		convey.Convey("When enqueueing within capacity", func() {
			convey.So(q.Enqueue(ctx, task("e1")), convey.ShouldBeNil)
			convey.So(q.Enqueue(ctx, task("e2")), convey.ShouldBeNil)

			convey.Convey("Then a third task should be rejected as backpressure", func() {
				err := q.Enqueue(ctx, task("e3"))
				convey.So(errors.Is(err, queue.ErrFull), convey.ShouldBeTrue)
				convey.So(q.Len(ctx), convey.ShouldEqual, 2)
			})

			convey.Convey("Then tasks should be delivered in FIFO order", func() {
				ch := q.Dequeue(ctx)
				first := <-ch
				second := <-ch
				convey.So(first.Event.EventID, convey.ShouldEqual, "e1")
				convey.So(second.Event.EventID, convey.ShouldEqual, "e2")
			})
		})

		convey.Convey("When the queue is closed", func() {
			convey.So(q.Enqueue(ctx, task("pending")), convey.ShouldBeNil)
			convey.So(q.Close(), convey.ShouldBeNil)
			convey.So(q.Close(), convey.ShouldBeNil)

			convey.Convey("Then enqueue should fail and the backlog should drain", func() {
				convey.So(q.IsClosed(), convey.ShouldBeTrue)
				convey.So(errors.Is(q.Enqueue(ctx, task("late")), queue.ErrClosed), convey.ShouldBeTrue)

				var got []string
				for tk := range q.Dequeue(ctx) {
					got = append(got, tk.Event.EventID)
				}
				convey.So(got, convey.ShouldResemble, []string{"pending"})
			})
		})

		convey.Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			err := q.Enqueue(cctx, task("x"))
			convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
		})
	})
}

func TestInMemoryQueueConcurrentProducers(t *testing.T) {
	convey.Convey("Given many producers and one consumer", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(16))
		const producers, perProducer = 8, 50

		var wg sync.WaitGroup
		for p := 0; p < producers; p++ {
			wg.Add(1)
			go func(p int) {
				defer wg.Done()
				for i := 0; i < perProducer; i++ {
					for q.Enqueue(ctx, task(fmt.Sprintf("%d-%d", p, i))) != nil {
						time.Sleep(time.Millisecond)
					}
				}
			}(p)
		}
		go func() {
			wg.Wait()
			_ = q.Close()
		}()

		count := 0
		for range q.Dequeue(ctx) {
			count++
		}

		convey.Convey("Then every task should be consumed exactly once", func() {
			convey.So(count, convey.ShouldEqual, producers*perProducer)
		})
	})
}
