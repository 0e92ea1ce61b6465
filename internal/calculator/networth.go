package calculator

import (
	"github.com/iwvelando/canfin/pkg/aggregate"
	"github.com/iwvelando/canfin/pkg/constants"
	"github.com/iwvelando/canfin/pkg/mathutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Labels used for the assets/liabilities split.
const (
	TotalAssetsLabel      = "Total Assets"
	TotalLiabilitiesLabel = "Total Liabilities"
)

// NetWorthSummary is the result of a net worth calculation.
type NetWorthSummary struct {
	TotalAssets       decimal.Decimal   `json:"totalAssets"`
	TotalLiabilities  decimal.Decimal   `json:"totalLiabilities"`
	NetWorth          decimal.Decimal   `json:"netWorth"`
	Split             []aggregate.Group `json:"split"`
	AssetsByType      []aggregate.Group `json:"assetsByType"`
	LiabilitiesByType []aggregate.Group `json:"liabilitiesByType"`
}

// NetWorth totals assets and liabilities. Values are point-in-time, so no
// frequency normalization applies.
func (c *Calculator) NetWorth(assets []AssetRecord, liabilities []LiabilityRecord) NetWorthSummary {
	totalAssets := aggregate.Sum(assets, assetValue)
	totalLiabilities := aggregate.Sum(liabilities, liabilityValue)
	netWorth := totalAssets.Sub(totalLiabilities)

	summary := NetWorthSummary{
		TotalAssets:      mathutil.Round(totalAssets),
		TotalLiabilities: mathutil.Round(totalLiabilities),
		NetWorth:         mathutil.Round(netWorth),
		Split: roundGroups(aggregate.FromTotals(
			[]string{TotalAssetsLabel, TotalLiabilitiesLabel},
			[]decimal.Decimal{totalAssets, totalLiabilities},
		)),
		AssetsByType:      roundGroups(aggregate.Grouped(assets, assetType, assetValue)),
		LiabilitiesByType: roundGroups(aggregate.Grouped(liabilities, liabilityType, liabilityValue)),
	}

	c.logger.Debug("net worth computed",
		zap.String("op", "calculator.NetWorth"),
		zap.Int("assets", len(assets)),
		zap.Int("liabilities", len(liabilities)),
		zap.String("netWorth", summary.NetWorth.StringFixed(constants.DecimalPlaces)),
	)
	return summary
}
