package mathutil

// Mat3 is a row-major 3×3 matrix; the camera uses it to orient its viewport.
type Mat3 [9]float64

// Mat3Mul returns a × b, so (a × b) × v applies b first.
func Mat3Mul(a, b Mat3) Mat3 {
	var m Mat3
	for i := range m {
		r, c := i/3*3, i%3
		m[i] = a[r]*b[c] + a[r+1]*b[3+c] + a[r+2]*b[6+c]
	}
	return m
}

// MulVec3 returns M × v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}
