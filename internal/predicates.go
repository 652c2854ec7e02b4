package internal

import (
	"math"
	"math/big"

	"github.com/golang/geo/r2"
)

// Orientation and in-circle tests. Each test first evaluates the determinant
// in ordinary floating point together with a forward error bound. Only when
// the magnitude of the result is below that bound is the determinant
// recomputed exactly with big.Float, so the sign of the returned value is
// always correct.

const (
	// Half of the machine epsilon for float64, 2^-53.
	epsilon = 1.0 / (1 << 53)

	ccwErrBoundA = (3.0 + 16.0*epsilon) * epsilon
	iccErrBoundA = (10.0 + 96.0*epsilon) * epsilon
)

// newBigFloat constructs a new big.Float with maximum precision. Sums and
// products of float64 values never round at this precision.
func newBigFloat() *big.Float { return new(big.Float).SetPrec(big.MaxPrec) }

func bigFromFloat(f float64) *big.Float { return newBigFloat().SetFloat64(f) }

// Orient2D returns a positive value if a, b, c occur in counterclockwise
// order, a negative value if they occur in clockwise order, and zero if they
// are collinear. The magnitude approximates twice the signed area of the
// triangle.
func Orient2D(a, b, c r2.Point) float64 {
	detLeft := (a.X - c.X) * (b.Y - c.Y)
	detRight := (a.Y - c.Y) * (b.X - c.X)
	det := detLeft - detRight

	var detSum float64
	if detLeft > 0 {
		if detRight <= 0 {
			return det
		}
		detSum = detLeft + detRight
	} else if detLeft < 0 {
		if detRight >= 0 {
			return det
		}
		detSum = -detLeft - detRight
	} else {
		return det
	}

	errBound := ccwErrBoundA * detSum
	if det >= errBound || -det >= errBound {
		return det
	}
	return exactOrient2D(a, b, c)
}

func exactOrient2D(a, b, c r2.Point) float64 {
	acx := newBigFloat().Sub(bigFromFloat(a.X), bigFromFloat(c.X))
	acy := newBigFloat().Sub(bigFromFloat(a.Y), bigFromFloat(c.Y))
	bcx := newBigFloat().Sub(bigFromFloat(b.X), bigFromFloat(c.X))
	bcy := newBigFloat().Sub(bigFromFloat(b.Y), bigFromFloat(c.Y))

	left := newBigFloat().Mul(acx, bcy)
	right := newBigFloat().Mul(acy, bcx)
	return signedFloat(newBigFloat().Sub(left, right))
}

// InCircle returns a positive value if d lies inside the circle passing
// through a, b, c (which must be in counterclockwise order), a negative value
// if it lies outside, and zero if the four points are cocircular.
func InCircle(a, b, c, d r2.Point) float64 {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	bdxcdy := bdx * cdy
	cdxbdy := cdx * bdy
	aLift := adx*adx + ady*ady

	cdxady := cdx * ady
	adxcdy := adx * cdy
	bLift := bdx*bdx + bdy*bdy

	adxbdy := adx * bdy
	bdxady := bdx * ady
	cLift := cdx*cdx + cdy*cdy

	det := aLift*(bdxcdy-cdxbdy) + bLift*(cdxady-adxcdy) + cLift*(adxbdy-bdxady)

	permanent := (math.Abs(bdxcdy)+math.Abs(cdxbdy))*aLift +
		(math.Abs(cdxady)+math.Abs(adxcdy))*bLift +
		(math.Abs(adxbdy)+math.Abs(bdxady))*cLift
	errBound := iccErrBoundA * permanent
	if det > errBound || -det > errBound {
		return det
	}
	return exactInCircle(a, b, c, d)
}

func exactInCircle(a, b, c, d r2.Point) float64 {
	sub := func(x, y float64) *big.Float {
		return newBigFloat().Sub(bigFromFloat(x), bigFromFloat(y))
	}
	adx, ady := sub(a.X, d.X), sub(a.Y, d.Y)
	bdx, bdy := sub(b.X, d.X), sub(b.Y, d.Y)
	cdx, cdy := sub(c.X, d.X), sub(c.Y, d.Y)

	lift := func(x, y *big.Float) *big.Float {
		xx := newBigFloat().Mul(x, x)
		yy := newBigFloat().Mul(y, y)
		return xx.Add(xx, yy)
	}
	cross := func(x1, y1, x2, y2 *big.Float) *big.Float {
		l := newBigFloat().Mul(x1, y2)
		r := newBigFloat().Mul(x2, y1)
		return l.Sub(l, r)
	}

	det := newBigFloat().Mul(lift(adx, ady), cross(bdx, bdy, cdx, cdy))
	det.Add(det, newBigFloat().Mul(lift(bdx, bdy), cross(cdx, cdy, adx, ady)))
	det.Add(det, newBigFloat().Mul(lift(cdx, cdy), cross(adx, ady, bdx, bdy)))
	return signedFloat(det)
}

// Convert an exact determinant to float64 without losing its sign to
// underflow.
func signedFloat(f *big.Float) float64 {
	sign := f.Sign()
	if sign == 0 {
		return 0
	}
	result, _ := f.Float64()
	if result == 0 {
		return float64(sign) * math.SmallestNonzeroFloat64
	}
	return result
}

// Circumcenter finds the circumcenter of the triangle org, dest, apex. When
// offConstant is positive, an off-center closer to the shortest edge is
// returned instead if it is nearer (Üngör's off-centers). xi and eta are the
// coordinates of the result in the frame spanned by org->dest and org->apex,
// used to interpolate vertex attributes.
func Circumcenter(org, dest, apex r2.Point, offConstant float64) (center r2.Point, xi, eta float64) {
	xdo := dest.X - org.X
	ydo := dest.Y - org.Y
	xao := apex.X - org.X
	yao := apex.Y - org.Y
	doDist := xdo*xdo + ydo*ydo
	aoDist := xao*xao + yao*yao
	daDist := (dest.X-apex.X)*(dest.X-apex.X) + (dest.Y-apex.Y)*(dest.Y-apex.Y)

	// Orient2D gives a positive, reasonably accurate denominator and rules out
	// division by zero for any nondegenerate triangle.
	denominator := 0.5 / Orient2D(dest, apex, org)
	dx := (yao*doDist - ydo*aoDist) * denominator
	dy := (xdo*aoDist - xao*doDist) * denominator

	if offConstant > 0 {
		if doDist < aoDist && doDist < daDist {
			dxOff := 0.5*xdo - offConstant*ydo
			dyOff := 0.5*ydo + offConstant*xdo
			if dxOff*dxOff+dyOff*dyOff < dx*dx+dy*dy {
				dx, dy = dxOff, dyOff
			}
		} else if aoDist < daDist {
			dxOff := 0.5*xao + offConstant*yao
			dyOff := 0.5*yao - offConstant*xao
			if dxOff*dxOff+dyOff*dyOff < dx*dx+dy*dy {
				dx, dy = dxOff, dyOff
			}
		} else {
			dxOff := 0.5*(apex.X-dest.X) - offConstant*(apex.Y-dest.Y)
			dyOff := 0.5*(apex.Y-dest.Y) + offConstant*(apex.X-dest.X)
			if dxOff*dxOff+dyOff*dyOff < (dx-xdo)*(dx-xdo)+(dy-ydo)*(dy-ydo) {
				dx = xdo + dxOff
				dy = ydo + dyOff
			}
		}
	}

	center = r2.Point{X: org.X + dx, Y: org.Y + dy}
	xi = (yao*dx - xao*dy) * (2.0 * denominator)
	eta = (xdo*dy - ydo*dx) * (2.0 * denominator)
	return
}
