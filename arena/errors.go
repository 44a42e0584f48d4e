package arena

import "errors"

// ErrRegionTooSmall indicates a region that cannot hold even one minimal block.
var ErrRegionTooSmall = errors.New("arena: region smaller than minimum block size")
