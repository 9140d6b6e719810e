package postgres_test

import (
	"testing"
	"time"

	alertPostgres "github.com/frahmantamala/budget-tracker/internal/alert/postgres"
	categoryDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/category"
	expenseDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/expense"
	notificationDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/notification"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAlertPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Alert Postgres Suite")
}

var _ = Describe("Aggregation Repository", func() {
	var db *gorm.DB

	createExpense := func(userID, month, categoryID string, amount int64) {
		err := db.Create(&expenseDatamodel.Expense{
			ID:          "exp_" + userID + month + categoryID + time.Now().String(),
			UserID:      userID,
			BudgetMonth: month,
			CategoryID:  categoryID,
			AmountCents: amount,
			ExpenseDate: month + "-10",
			CreatedAt:   time.Now(),
		}).Error
		Expect(err).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&categoryDatamodel.Category{},
			&expenseDatamodel.Expense{},
			&notificationDatamodel.Notification{},
		)
		Expect(err).NotTo(HaveOccurred())

		for _, c := range []categoryDatamodel.Category{
			{ID: "cat_groceries", UserID: "usr_1", Name: "Groceries"},
			{ID: "cat_transport", UserID: "usr_1", Name: "Transport"},
			{ID: "cat_other", UserID: "usr_2", Name: "Groceries"},
		} {
			Expect(db.Create(&c).Error).NotTo(HaveOccurred())
		}
	})

	It("sums the month's total across categories", func() {
		createExpense("usr_1", "2026-08", "cat_groceries", 4500)
		createExpense("usr_1", "2026-08", "cat_transport", 1500)

		repo := alertPostgres.NewAggregationRepository(db)
		agg, err := repo.Aggregate("usr_1", "2026-08")

		Expect(err).NotTo(HaveOccurred())
		Expect(agg.TotalSpendCents).To(Equal(int64(6000)))
	})

	It("keeps zero-spend categories in the per-category rows", func() {
		createExpense("usr_1", "2026-08", "cat_groceries", 4500)

		repo := alertPostgres.NewAggregationRepository(db)
		agg, err := repo.Aggregate("usr_1", "2026-08")

		Expect(err).NotTo(HaveOccurred())
		Expect(agg.PerCategory).To(HaveLen(2))
		Expect(agg.PerCategory[0].CategoryName).To(Equal("Groceries"))
		Expect(agg.PerCategory[0].SpendCents).To(Equal(int64(4500)))
		Expect(agg.PerCategory[1].CategoryName).To(Equal("Transport"))
		Expect(agg.PerCategory[1].SpendCents).To(BeZero())
	})

	It("ignores expenses from other months", func() {
		createExpense("usr_1", "2026-07", "cat_groceries", 9999)
		createExpense("usr_1", "2026-08", "cat_groceries", 100)

		repo := alertPostgres.NewAggregationRepository(db)
		agg, err := repo.Aggregate("usr_1", "2026-08")

		Expect(err).NotTo(HaveOccurred())
		Expect(agg.TotalSpendCents).To(Equal(int64(100)))
	})

	It("ignores other users' expenses and categories", func() {
		createExpense("usr_2", "2026-08", "cat_other", 7777)

		repo := alertPostgres.NewAggregationRepository(db)
		agg, err := repo.Aggregate("usr_1", "2026-08")

		Expect(err).NotTo(HaveOccurred())
		Expect(agg.TotalSpendCents).To(BeZero())
		for _, cs := range agg.PerCategory {
			Expect(cs.CategoryID).NotTo(Equal("cat_other"))
		}
	})

	It("returns an empty snapshot for a month with no data", func() {
		repo := alertPostgres.NewAggregationRepository(db)
		agg, err := repo.Aggregate("usr_1", "2026-08")

		Expect(err).NotTo(HaveOccurred())
		Expect(agg.TotalSpendCents).To(BeZero())
		Expect(agg.PerCategory).To(HaveLen(2))
	})
})

var _ = Describe("Notification Dedup Store", func() {
	var db *gorm.DB

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&notificationDatamodel.Notification{})
		Expect(err).NotTo(HaveOccurred())
	})

	It("finds an identical notification inside the window", func() {
		store := alertPostgres.NewNotificationRepository(db)
		now := time.Now().UTC()

		err := store.Create(&notificationDatamodel.Notification{
			ID: "ntf_1", UserID: "usr_1", Month: "2026-08",
			Type:      notificationDatamodel.TypeBudgetWarning,
			Message:   "Budget warning: $80.00 / $100.00",
			CreatedAt: now.Add(-time.Hour),
		})
		Expect(err).NotTo(HaveOccurred())

		exists, err := store.ExistsSince("usr_1", "2026-08",
			notificationDatamodel.TypeBudgetWarning,
			"Budget warning: $80.00 / $100.00",
			now.Add(-24*time.Hour))
		Expect(err).NotTo(HaveOccurred())
		Expect(exists).To(BeTrue())
	})

	It("does not match a notification older than the window", func() {
		store := alertPostgres.NewNotificationRepository(db)
		now := time.Now().UTC()

		err := store.Create(&notificationDatamodel.Notification{
			ID: "ntf_1", UserID: "usr_1", Month: "2026-08",
			Type:      notificationDatamodel.TypeBudgetWarning,
			Message:   "Budget warning: $80.00 / $100.00",
			CreatedAt: now.Add(-25 * time.Hour),
		})
		Expect(err).NotTo(HaveOccurred())

		exists, err := store.ExistsSince("usr_1", "2026-08",
			notificationDatamodel.TypeBudgetWarning,
			"Budget warning: $80.00 / $100.00",
			now.Add(-24*time.Hour))
		Expect(err).NotTo(HaveOccurred())
		Expect(exists).To(BeFalse())
	})

	It("does not match when the message differs", func() {
		store := alertPostgres.NewNotificationRepository(db)
		now := time.Now().UTC()

		err := store.Create(&notificationDatamodel.Notification{
			ID: "ntf_1", UserID: "usr_1", Month: "2026-08",
			Type:      notificationDatamodel.TypeBudgetWarning,
			Message:   "Budget warning: $80.00 / $100.00",
			CreatedAt: now.Add(-time.Hour),
		})
		Expect(err).NotTo(HaveOccurred())

		exists, err := store.ExistsSince("usr_1", "2026-08",
			notificationDatamodel.TypeBudgetWarning,
			"Budget warning: $90.00 / $100.00",
			now.Add(-24*time.Hour))
		Expect(err).NotTo(HaveOccurred())
		Expect(exists).To(BeFalse())
	})
})
