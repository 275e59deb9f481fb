package msa

import "errors"

// ErrNonFinite indicates a coordinate that is NaN or infinite. It is the
// validation boundary for data decoded from external sources; the metric
// functions themselves assume finite inputs.
var ErrNonFinite = errors.New("msa: non-finite coordinate")
