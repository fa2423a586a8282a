package imageutil

// CreateGradientGray creates a horizontal gradient running from 0 on the
// left to 255 on the right.
func CreateGradientGray(width, height int) *GrayImage {
	img := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(0)
			if width > 1 {
				v = uint8(255 * x / (width - 1))
			}
			img.SetGrayValue(x, y, v)
		}
	}
	return img
}

// CreateCheckerboardGray creates a black and white checkerboard whose
// top-left square is white.
func CreateCheckerboardGray(width, height, squareSize int) *GrayImage {
	img := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				img.SetGrayValue(x, y, 255)
			}
		}
	}
	return img
}

// CreateSolidGray creates an image filled with v.
func CreateSolidGray(width, height int, v uint8) *GrayImage {
	img := NewGrayImage(width, height)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// CalculateMSEGray calculates Mean Squared Error between two grayscale
// images of the same size.
func CalculateMSEGray(img1, img2 *GrayImage) float64 {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return -1
	}
	var sum float64
	n := img1.Width() * img1.Height()
	if n == 0 {
		return 0
	}
	for y := 0; y < img1.Height(); y++ {
		for x := 0; x < img1.Width(); x++ {
			d := float64(img1.GetGray(x, y)) - float64(img2.GetGray(x, y))
			sum += d * d
		}
	}
	return sum / float64(n)
}
