package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"pos-backend/store"
	"pos-backend/utils"
)

// LowStockNotifier is the nightly job that scans the catalog for variants
// running low and mails the result to operations. With no mailer
// configured it only logs.
type LowStockNotifier struct {
	store     store.Store
	mailer    *utils.Mailer
	threshold int
	recipient string
	log       *logrus.Logger
}

func NewLowStockNotifier(st store.Store, mailer *utils.Mailer, threshold int, recipient string, log *logrus.Logger) *LowStockNotifier {
	return &LowStockNotifier{store: st, mailer: mailer, threshold: threshold, recipient: recipient, log: log}
}

func (n *LowStockNotifier) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	items, err := n.store.LowStock(ctx, n.threshold)
	if err != nil {
		n.log.WithError(err).Error("low stock scan failed")
		return
	}
	if len(items) == 0 {
		n.log.Info("low stock scan: all variants above threshold")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Variants below the stock threshold of %d:\n\n", n.threshold)
	for _, it := range items {
		fmt.Fprintf(&b, "%s (%s) / %s: %d left\n", it.ProductName, it.Barcode, it.VariantName, it.Stock)
	}

	n.log.WithField("count", len(items)).Warn("low stock scan found variants below threshold")

	if n.mailer == nil || n.recipient == "" {
		return
	}
	if err := n.mailer.Send(n.recipient, "Low stock alert", b.String()); err != nil {
		n.log.WithError(err).Error("sending low stock alert failed")
	}
}
