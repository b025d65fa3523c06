package store_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Joseph-Bostok/TBB/pkg/store"
)

var _ = Describe("MemoryMessages", func() {
	var (
		messages *store.MemoryMessages
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		messages = store.NewMemoryMessages()
	})

	It("starts empty", func() {
		Expect(messages.Records()).To(BeEmpty())
	})

	It("records user and message in insertion order", func() {
		Expect(messages.SaveMessage(ctx, "alice", "hello")).To(Succeed())
		Expect(messages.SaveMessage(ctx, "bob", "hey")).To(Succeed())

		records := messages.Records()
		Expect(records).To(HaveLen(2))
		Expect(records[0].User).To(Equal("alice"))
		Expect(records[0].Message).To(Equal("hello"))
		Expect(records[1].User).To(Equal("bob"))
		Expect(records[1].Message).To(Equal("hey"))
	})

	It("assigns a distinct id to each record", func() {
		Expect(messages.SaveMessage(ctx, "alice", "hi")).To(Succeed())
		Expect(messages.SaveMessage(ctx, "alice", "hi")).To(Succeed())

		records := messages.Records()
		Expect(records).To(HaveLen(2))
		Expect(records[0].ID).NotTo(Equal(records[1].ID))
	})

	It("counts per user", func() {
		Expect(messages.SaveMessage(ctx, "alice", "one")).To(Succeed())
		Expect(messages.SaveMessage(ctx, "bob", "two")).To(Succeed())
		Expect(messages.SaveMessage(ctx, "alice", "three")).To(Succeed())

		count, err := messages.CountByUser(ctx, "alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(2))
	})
})
