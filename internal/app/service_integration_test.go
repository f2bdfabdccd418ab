package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/okian/intake/internal/app"
	"github.com/okian/intake/internal/domain/model"
	"github.com/okian/intake/pkg/logger"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a started service shared by many callers", t, func() {
		svc := service.New(
			service.WithLogger(logger.Nop()),
			service.WithQueueSize(1000),
			service.WithController(service.WithEngine(alwaysValidEngine())),
		)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		const callers = 50

		Convey("When every caller commits a distinct skill concurrently", func() {
			var wg sync.WaitGroup
			errs := make(chan error, callers)
			for i := 0; i < callers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, err := svc.Dispatch(ctx, model.Event{Kind: model.EventCommitSkill, Value: fmt.Sprintf("skill-%02d", i)})
					errs <- err
				}(i)
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				So(err, ShouldBeNil)
			}

			Convey("Then every skill should be present exactly once", func() {
				out, err := svc.Dispatch(ctx, model.Event{Kind: model.EventView})
				So(err, ShouldBeNil)
				So(out.Form.Skills, ShouldHaveLength, callers)

				seen := make(map[string]bool, callers)
				for _, s := range out.Form.Skills {
					So(seen[s], ShouldBeFalse)
					seen[s] = true
				}
				So(out.Form.SkillInput, ShouldBeEmpty)
			})
		})

		Convey("When callers race to fill and submit the form", func() {
			var (
				wg       sync.WaitGroup
				mu       sync.Mutex
				accepted int
			)
			for i := 0; i < callers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					if _, err := svc.Dispatch(ctx, model.Event{Kind: model.EventSetField, Field: model.FieldName, Value: fmt.Sprintf("user-%d", i)}); err != nil {
						return
					}
					out, err := svc.Dispatch(ctx, model.Event{Kind: model.EventSubmit})
					if err == nil && out.Accepted {
						mu.Lock()
						accepted++
						mu.Unlock()
					}
					_ = svc.Submissions(ctx)
				}(i)
			}
			wg.Wait()

			Convey("Then the history should hold exactly the accepted snapshots in order", func() {
				history := svc.Submissions(ctx)
				So(accepted, ShouldBeGreaterThan, 0)
				So(history, ShouldHaveLength, accepted)

				ids := make(map[string]bool, len(history))
				for i, snap := range history {
					So(snap.Seq, ShouldEqual, i+1)
					So(ids[snap.ID], ShouldBeFalse)
					ids[snap.ID] = true
					So(snap.Values.Name, ShouldStartWith, "user-")
				}
			})

			Convey("And each snapshot should be retrievable by id", func() {
				for _, snap := range svc.Submissions(ctx) {
					got, err := svc.Submission(ctx, snap.ID)
					So(err, ShouldBeNil)
					So(got.Seq, ShouldEqual, snap.Seq)
				}
			})

			Convey("And stats should agree with the history", func() {
				stats := svc.GetStats()
				So(stats["submissions"], ShouldEqual, accepted)
			})
		})
	})
}

func TestServiceRestart(t *testing.T) {
	Convey("Given a service that handled events and was stopped", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()))
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)

		for i := 0; i < 5; i++ {
			_, err := svc.Dispatch(ctx, model.Event{Kind: model.EventCommitSkill, Value: fmt.Sprintf("s%d", i)})
			So(err, ShouldBeNil)
		}
		svc.Stop()

		_, err := svc.Dispatch(ctx, model.Event{Kind: model.EventView})
		So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)

		Convey("When it is started again", func() {
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			Convey("Then the form session should be intact", func() {
				out, err := svc.Dispatch(ctx, model.Event{Kind: model.EventView})
				So(err, ShouldBeNil)
				So(out.Form.Skills, ShouldResemble, []string{"s0", "s1", "s2", "s3", "s4"})
			})
		})
	})
}
