package models

// RawRecord maps a column header to the raw text of one CSV data row.
type RawRecord map[string]string

// ColumnMapping selects the CSV columns holding torque and angle data.
// Status columns are optional, value columns are required.
type ColumnMapping struct {
	TorqueStatus string `json:"torqueStatusColumn"`
	TorqueValue  string `json:"torqueValueColumn" validate:"required"`
	AngleStatus  string `json:"angleStatusColumn"`
	AngleValue   string `json:"angleValueColumn" validate:"required"`
}

// Stats holds descriptive statistics of one sample. A nil field means
// "not available" and is serialized as null.
type Stats struct {
	Count    int      `json:"count"`
	Mean     *float64 `json:"mean"`
	Median   *float64 `json:"median"`
	StdDev   *float64 `json:"stddev"`
	Skewness *float64 `json:"skewness"`
	Kurtosis *float64 `json:"kurtosis"`
}

type MeasurementStats struct {
	Torque Stats `json:"torque"`
	Angle  Stats `json:"angle"`
}

type StatsGroups struct {
	OK  MeasurementStats `json:"ok"`
	NOK MeasurementStats `json:"nok"`
	All MeasurementStats `json:"all"`
}

type RawData struct {
	OKTorque  []float64 `json:"ok_torque"`
	OKAngle   []float64 `json:"ok_angle"`
	NOKTorque []float64 `json:"nok_torque"`
	NOKAngle  []float64 `json:"nok_angle"`
}

// Limits are the user supplied specification limits (LIE lower, LSE upper).
type Limits struct {
	LIE float64 `json:"lie"`
	LSE float64 `json:"lse"`
}

type CapabilityResult struct {
	Cp  *float64 `json:"cp"`
	Cpk *float64 `json:"cpk"`
}

type PerformanceResult struct {
	Pp  *float64 `json:"pp"`
	Ppk *float64 `json:"ppk"`
}

// Series is a label/value pair sequence ready for a line or bar chart.
// X keeps the unformatted x positions when the labels are numeric.
type Series struct {
	X      []float64 `json:"-"`
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

type HistogramData struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// ControlChart is the point series of a bucket plus its constant reference lines.
// Upper and Lower are nil for buckets plotted without ±3σ bands.
type ControlChart struct {
	Labels []string   `json:"labels"`
	Data   []float64  `json:"data"`
	Center []*float64 `json:"center"`
	Upper  []*float64 `json:"upper,omitempty"`
	Lower  []*float64 `json:"lower,omitempty"`
}

type BoxPlot struct {
	Count        int       `json:"count"`
	Min          float64   `json:"min"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	Max          float64   `json:"max"`
	IQR          float64   `json:"iqr"`
	LowerWhisker float64   `json:"lowerWhisker"`
	UpperWhisker float64   `json:"upperWhisker"`
	Outliers     []float64 `json:"outliers"`
}

type BucketCharts struct {
	Histogram    HistogramData `json:"histogram"`
	NormalCurve  Series        `json:"normalCurve"`
	ControlChart ControlChart  `json:"controlChart"`
	BoxPlot      BoxPlot       `json:"boxplot"`
}

type Charts struct {
	OKTorque  BucketCharts `json:"ok_torque"`
	OKAngle   BucketCharts `json:"ok_angle"`
	NOKTorque BucketCharts `json:"nok_torque"`
	NOKAngle  BucketCharts `json:"nok_angle"`
}

type ControlChartData struct {
	Torque Series `json:"torque"`
	Angle  Series `json:"angle"`
}

// AnalysisResult is the full response of one analysis request.
type AnalysisResult struct {
	AnalysisID       string           `json:"analysisId"`
	FileName         string           `json:"fileName"`
	Stats            StatsGroups      `json:"stats"`
	RawData          RawData          `json:"rawData"`
	AllTorque        []float64        `json:"all_torque"`
	AllAngle         []float64        `json:"all_angle"`
	ControlChartData ControlChartData `json:"controlChartData"`
	Charts           Charts           `json:"charts"`
}

// LimitsText carries limits exactly as typed by the user, decimal comma allowed.
type LimitsText struct {
	LIE string `json:"lie"`
	LSE string `json:"lse"`
}

type CapabilityRequest struct {
	Stats struct {
		OK  MeasurementStats `json:"ok"`
		All MeasurementStats `json:"all"`
	} `json:"stats"`
	Limits struct {
		Torque LimitsText `json:"torque"`
		Angle  LimitsText `json:"angle"`
	} `json:"limits"`
}

type CapabilityResponse struct {
	Capability struct {
		Torque CapabilityResult `json:"torque"`
		Angle  CapabilityResult `json:"angle"`
	} `json:"capability"`
	Performance struct {
		Torque PerformanceResult `json:"torque"`
		Angle  PerformanceResult `json:"angle"`
	} `json:"performance"`
}
