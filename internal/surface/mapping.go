package surface

// ScreenToGrid maps a click at surface pixel (x, y) onto a gridW x gridH
// simulation grid whose row 0 is the bottom of the surface. Clicks on or
// outside the surface edge are rejected. Arithmetic is done in float32 so
// edge cells land on the same rows as single-precision toolkit coordinates.
func ScreenToGrid(x, y, gridW, gridH int) (gx, gy int, ok bool) {
	if x <= 0 || x >= Width || y <= 0 || y >= Height {
		return 0, 0, false
	}
	gx = int(float32(x) / Width * float32(gridW))
	row := int(float32(y)/Height*float32(gridH)) + 1
	return gx, gridH - row, true
}
