package decode

import "image"

// applyOrientation transforms the image so that it displays upright for
// the given EXIF orientation value. Values outside [2,8] are a no-op.
func applyOrientation(img *image.NRGBA, orientation int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	switch orientation {
	case 2: // mirrored horizontally
		return remap(img, w, h, func(x, y int) (int, int) { return w - 1 - x, y })
	case 3: // rotated 180
		return remap(img, w, h, func(x, y int) (int, int) { return w - 1 - x, h - 1 - y })
	case 4: // mirrored vertically
		return remap(img, w, h, func(x, y int) (int, int) { return x, h - 1 - y })
	case 5: // mirrored along top-left diagonal
		return remap(img, h, w, func(x, y int) (int, int) { return y, x })
	case 6: // needs 90 degree clockwise rotation to display upright
		return remap(img, h, w, func(x, y int) (int, int) { return y, h - 1 - x })
	case 7: // mirrored along top-right diagonal
		return remap(img, h, w, func(x, y int) (int, int) { return w - 1 - y, h - 1 - x })
	case 8: // needs 90 degree counter-clockwise rotation to display upright
		return remap(img, h, w, func(x, y int) (int, int) { return w - 1 - y, x })
	}
	return img
}

// remap builds a dstW x dstH image whose pixel at (x, y) is taken from
// src at the coordinates returned by at.
func remap(src *image.NRGBA, dstW, dstH int, at func(x, y int) (sx, sy int)) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))
	for y := 0; y < dstH; y++ {
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < dstW; x++ {
			sx, sy := at(x, y)
			s := src.Pix[sy*src.Stride+sx*4 : sy*src.Stride+sx*4+4 : sy*src.Stride+sx*4+4]
			d := row[x*4 : x*4+4 : x*4+4]
			d[0], d[1], d[2], d[3] = s[0], s[1], s[2], s[3]
		}
	}
	return dst
}
