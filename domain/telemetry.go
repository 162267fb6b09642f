package domain

import "github.com/prometheus/client_golang/prometheus"

var (
	// liquidrop_auction_purchase_total
	//
	// counter that measures the number of successful purchases
	LiquidropPurchaseTotalMetricName = "liquidrop_auction_purchase_total"

	// liquidrop_auction_purchase_error_total
	//
	// counter that measures the number of failed purchases
	//
	// Has the following labels:
	// * err - the error message occurred
	LiquidropPurchaseErrorMetricName = "liquidrop_auction_purchase_error_total"

	// liquidrop_auction_listings_established_total
	//
	// counter that measures the number of listings established, including the
	// bootstrap listing and per-purchase replacements
	LiquidropListingsEstablishedMetricName = "liquidrop_auction_listings_established_total"

	LiquidropPurchaseTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: LiquidropPurchaseTotalMetricName,
			Help: "counter that measures the number of successful purchases",
		},
	)

	LiquidropPurchaseError = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: LiquidropPurchaseErrorMetricName,
			Help: "counter that measures the number of failed purchases",
		},
		[]string{"err"},
	)

	LiquidropListingsEstablished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: LiquidropListingsEstablishedMetricName,
			Help: "counter that measures the number of listings established",
		},
	)
)

func init() {
	prometheus.MustRegister(LiquidropPurchaseTotal)
	prometheus.MustRegister(LiquidropPurchaseError)
	prometheus.MustRegister(LiquidropListingsEstablished)
}
