package store_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Joseph-Bostok/TBB/pkg/store"
)

var _ = Describe("SQLiteMessages", func() {
	var (
		messages *store.SQLiteMessages
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		dbPath := filepath.Join(GinkgoT().TempDir(), "users.db")
		messages, err = store.NewSQLiteMessages(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if messages != nil {
			messages.Close()
		}
	})

	Describe("NewSQLiteMessages", func() {
		It("creates the database file", func() {
			tmpDir := GinkgoT().TempDir()
			dbPath := filepath.Join(tmpDir, "test.db")

			s, err := store.NewSQLiteMessages(dbPath)
			Expect(err).NotTo(HaveOccurred())
			defer s.Close()

			_, err = os.Stat(dbPath)
			Expect(err).NotTo(HaveOccurred())
		})

		It("creates missing parent directories", func() {
			tmpDir := GinkgoT().TempDir()
			dbPath := filepath.Join(tmpDir, "data", "users.db")

			s, err := store.NewSQLiteMessages(dbPath)
			Expect(err).NotTo(HaveOccurred())
			defer s.Close()

			_, err = os.Stat(dbPath)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("SaveMessage", func() {
		It("stores a record", func() {
			err := messages.SaveMessage(ctx, "alice", "hello")
			Expect(err).NotTo(HaveOccurred())

			count, err := messages.CountByUser(ctx, "alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(1))
		})

		It("stores duplicate messages as separate records", func() {
			Expect(messages.SaveMessage(ctx, "alice", "hi")).To(Succeed())
			Expect(messages.SaveMessage(ctx, "alice", "hi")).To(Succeed())

			count, err := messages.CountByUser(ctx, "alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))
		})

		It("accepts empty message bodies", func() {
			Expect(messages.SaveMessage(ctx, "alice", "")).To(Succeed())

			count, err := messages.CountByUser(ctx, "alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(1))
		})

		It("tolerates concurrent writers", func() {
			const writers = 8
			const perWriter = 10

			var wg sync.WaitGroup
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					defer GinkgoRecover()
					for j := 0; j < perWriter; j++ {
						Expect(messages.SaveMessage(ctx, "bob", "spam")).To(Succeed())
					}
				}()
			}
			wg.Wait()

			count, err := messages.CountByUser(ctx, "bob")
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(writers * perWriter))
		})

		It("fails after the store is closed", func() {
			Expect(messages.Close()).To(Succeed())
			err := messages.SaveMessage(ctx, "alice", "hello")
			Expect(err).To(HaveOccurred())
			messages = nil
		})
	})

	Describe("CountByUser", func() {
		It("returns zero for an unknown user", func() {
			count, err := messages.CountByUser(ctx, "nobody")
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(0))
		})

		It("counts per user", func() {
			Expect(messages.SaveMessage(ctx, "alice", "one")).To(Succeed())
			Expect(messages.SaveMessage(ctx, "alice", "two")).To(Succeed())
			Expect(messages.SaveMessage(ctx, "bob", "three")).To(Succeed())

			count, err := messages.CountByUser(ctx, "alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))

			count, err = messages.CountByUser(ctx, "bob")
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(1))
		})
	})
})
