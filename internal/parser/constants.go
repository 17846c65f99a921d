package parser

import "regexp"

// Column coordinate bands for the transaction table, calibrated against the
// issuer's layout (word x0 anchors: activity ~82.5, post ~138.4, reference
// ~197.7, description ~265.1, amount >520). Fixed per document geometry;
// there is no runtime configuration.
type band struct {
	left  float64
	right float64
}

func (b band) contains(x float64) bool { return b.left <= x && x <= b.right }

var (
	colActivity = band{70, 115}
	colPost     = band{125, 165}
	colRef      = band{185, 230}
	colDesc     = band{255, 510}
	colAmount   = band{515, 580}
)

// Literal labels matched against concatenated row text.
const (
	sectionStartLabel  = "Transactions"
	columnHeaderLabel  = "ActivityDate"
	cardNumberLabel    = "CardNumberEnding"
	accountSuffixLabel = "AccountNumberEndingin:"
	pointsLabel        = "NewPointsBalance"
)

// sectionEndLabels terminate the transaction scan. The fees table follows
// the transaction table on every observed statement.
var sectionEndLabels = []string{"Fees", "TOTALFEESFORTHISPERIOD", "TotalFees"}

// Page-1 header geometry: the cardholder and entity names sit against the
// right margin in two stacked bands; the billing period appears above 70pt.
const (
	headerRightMargin = 400.0
	cardholderMaxTop  = 35.0
	entityMaxTop      = 50.0
	billingMaxTop     = 70.0
)

var (
	reTxnDate  = regexp.MustCompile(`^(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\d{2}$`)
	reCurrency = regexp.MustCompile(`\$[\d,]+\.\d{2}(?:CR)?`)
	reSuffix   = regexp.MustCompile(`(\d{4})$`)
	reBilling  = regexp.MustCompile(`(\w+\d+,\d{4})-(\w+\d+,\d{4})`)
)
