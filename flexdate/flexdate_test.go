package flexdate_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/medportal-org/portal/flexdate"
)

type doc struct {
	Date flexdate.Date `bson:"date,omitempty"`
}

var _ = Describe("Date", func() {
	Describe("FormatOr", func() {
		It("formats the structured arm with the given layout", func() {
			date := flexdate.FromTime(time.Date(2024, 3, 10, 14, 45, 12, 0, time.UTC))
			Expect(date.FormatOr(flexdate.DayPrecision, "N/A")).To(Equal("2024-03-10"))
			Expect(date.FormatOr(flexdate.MinutePrecision, "N/A")).To(Equal("2024-03-10 14:45"))
		})

		It("passes pre-formatted text through unchanged", func() {
			date := flexdate.FromString("1980-05-10")
			Expect(date.FormatOr(flexdate.DayPrecision, "N/A")).To(Equal("1980-05-10"))
			Expect(date.FormatOr(flexdate.MinutePrecision, "N/A")).To(Equal("1980-05-10"))
		})

		It("returns the fallback when neither arm is set", func() {
			Expect(flexdate.Date{}.FormatOr(flexdate.DayPrecision, "N/A")).To(Equal("N/A"))
		})
	})

	Describe("BSON round trip", func() {
		It("decodes datetime values into the structured arm", func() {
			expected := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
			raw, err := bson.Marshal(bson.M{"date": expected})
			Expect(err).ToNot(HaveOccurred())

			var decoded doc
			Expect(bson.Unmarshal(raw, &decoded)).To(Succeed())
			Expect(decoded.Date.Time).ToNot(BeNil())
			Expect(decoded.Date.Time.Equal(expected)).To(BeTrue())
			Expect(decoded.Date.Text).To(BeEmpty())
		})

		It("decodes string values into the text arm", func() {
			raw, err := bson.Marshal(bson.M{"date": "1980-05-10"})
			Expect(err).ToNot(HaveOccurred())

			var decoded doc
			Expect(bson.Unmarshal(raw, &decoded)).To(Succeed())
			Expect(decoded.Date.Time).To(BeNil())
			Expect(decoded.Date.Text).To(Equal("1980-05-10"))
		})

		It("preserves the arm when re-encoded", func() {
			original := doc{Date: flexdate.FromString("2022-10-15")}
			raw, err := bson.Marshal(original)
			Expect(err).ToNot(HaveOccurred())

			var decoded doc
			Expect(bson.Unmarshal(raw, &decoded)).To(Succeed())
			Expect(decoded.Date).To(Equal(original.Date))
		})

		It("decodes null as the zero value", func() {
			raw, err := bson.Marshal(bson.M{"date": nil})
			Expect(err).ToNot(HaveOccurred())

			var decoded doc
			Expect(bson.Unmarshal(raw, &decoded)).To(Succeed())
			Expect(decoded.Date.IsZero()).To(BeTrue())
		})
	})
})
