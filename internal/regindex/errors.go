package regindex

import "errors"

// ErrRetrievalUnavailable indicates the embedding capability failed or is
// unreachable. Callers degrade by proceeding without regulatory citations.
var ErrRetrievalUnavailable = errors.New("retrieval unavailable")

// ErrVectorLengthMismatch indicates two vectors have different dimensions.
var ErrVectorLengthMismatch = errors.New("vector length mismatch")
