package geometry

import "errors"

// Construction errors. Shapes validate eagerly and never fail at intersection time.
var (
	ErrDegeneratePlane   = errors.New("plane points are coincident or collinear")
	ErrNonPositiveRadius = errors.New("radius must be positive")
	ErrNonPositiveHeight = errors.New("height must be positive")
	ErrTooFewVertices    = errors.New("polygon needs at least 3 vertices")
	ErrDuplicateVertex   = errors.New("polygon has consecutive duplicate vertices")
	ErrCollinearVertices = errors.New("polygon has three consecutive collinear vertices")
	ErrNotPlanar         = errors.New("polygon vertices are not coplanar")
	ErrNotConvex         = errors.New("polygon is not convex or its vertices are out of order")
)
