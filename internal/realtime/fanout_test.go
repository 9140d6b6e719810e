package realtime_test

import (
	"context"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	notificationDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/notification"
	"github.com/frahmantamala/budget-tracker/internal/core/events"
	"github.com/frahmantamala/budget-tracker/internal/realtime"
)

var _ = Describe("Fanout", func() {
	var (
		registry *realtime.Registry
		bus      *events.EventBus
		logger   *slog.Logger
	)

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		registry = realtime.NewRegistry(8)
		bus = events.NewEventBus(logger)
		realtime.NewFanout(registry, logger).RegisterEventHandlers(bus)
	})

	It("pushes an expense event to the owning user's sessions", func() {
		session := registry.Attach("usr_a")
		other := registry.Attach("usr_b")

		err := bus.PublishSync(context.Background(), events.NewExpenseCreatedEvent("usr_a", "exp_1", "2026-08"))
		Expect(err).ToNot(HaveOccurred())

		Expect(session.Events).To(HaveLen(1))
		env := <-session.Events
		Expect(env.Type).To(Equal(realtime.PushExpenseCreated))
		Expect(env.Payload).To(Equal(map[string]string{"id": "exp_1", "month": "2026-08"}))
		Expect(other.Events).To(BeEmpty())
	})

	It("pushes created notifications verbatim", func() {
		session := registry.Attach("usr_a")
		n := &notificationDatamodel.Notification{
			ID:      "ntf_1",
			UserID:  "usr_a",
			Month:   "2026-08",
			Type:    notificationDatamodel.TypeCategoryWarning,
			Message: "Approaching category limit (Groceries): $45.00 / $50.00",
		}

		err := bus.PublishSync(context.Background(), events.NewNotificationCreatedEvent("usr_a", n))
		Expect(err).ToNot(HaveOccurred())

		env := <-session.Events
		Expect(env.Type).To(Equal(realtime.PushNotificationCreated))
		Expect(env.Payload).To(Equal(n))
	})

	It("pushes budget updates with the month only", func() {
		session := registry.Attach("usr_a")

		err := bus.PublishSync(context.Background(), events.NewBudgetUpdatedEvent("usr_a", "2026-09"))
		Expect(err).ToNot(HaveOccurred())

		env := <-session.Events
		Expect(env.Type).To(Equal(realtime.PushBudgetUpdated))
		Expect(env.Payload).To(Equal(map[string]string{"month": "2026-09"}))
	})

	It("succeeds with no live sessions attached", func() {
		err := bus.PublishSync(context.Background(), events.NewBudgetUpdatedEvent("usr_ghost", "2026-08"))
		Expect(err).ToNot(HaveOccurred())
	})

	It("does not fail the publisher when a session buffer is saturated", func() {
		small := realtime.NewRegistry(1)
		smallBus := events.NewEventBus(logger)
		realtime.NewFanout(small, logger).RegisterEventHandlers(smallBus)
		session := small.Attach("usr_a")

		for i := 0; i < 3; i++ {
			err := smallBus.PublishSync(context.Background(), events.NewBudgetUpdatedEvent("usr_a", "2026-08"))
			Expect(err).ToNot(HaveOccurred())
		}

		Expect(session.Events).To(HaveLen(1))
		Expect(session.Dropped()).To(Equal(int64(2)))
	})
})
