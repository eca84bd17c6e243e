package results

// Column names shared across the merge pipeline. Result files come from a
// pandas-side exporter, so the row index travels as a leading column with an
// empty header.
const (
	ColIndex          = ""
	ColSeqName        = "seq_name"
	ColRateBpp        = "rate_bpp"
	ColPsnrDb         = "psnr_db"
	ColMSE            = "mse"
	ColAnchor         = "anchor"
	ColOptionSelected = "option_selected"
	ColLambda         = "lmbda"
	ColPixels         = "pixels"
)

// prunedColumns are dropped from the concatenated table before export.
// The drop is strict: if an input batch stops carrying one of these the
// merge fails instead of quietly changing shape.
var prunedColumns = []string{ColIndex, ColMSE, ColAnchor, ColOptionSelected}

// resultRecord is the row schema of parquet result files. CSV inputs carry
// the same columns.
type resultRecord struct {
	SeqName        string  `parquet:"seq_name"`
	RateBpp        float64 `parquet:"rate_bpp"`
	PsnrDb         float64 `parquet:"psnr_db"`
	MSE            float64 `parquet:"mse,optional"`
	Anchor         string  `parquet:"anchor,optional"`
	OptionSelected string  `parquet:"option_selected,optional"`
}

// MergedRecord is the fixed schema used when exporting the merged table to
// parquet. Pixels is null for sequences with no matching source image.
type MergedRecord struct {
	SeqName string  `parquet:"seq_name"`
	RateBpp float64 `parquet:"rate_bpp"`
	PsnrDb  float64 `parquet:"psnr_db"`
	Lmbda   float64 `parquet:"lmbda"`
	Pixels  *int64  `parquet:"pixels,optional"`
}
