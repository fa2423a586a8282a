package rakuga

// Sample resamples b into a height x width matrix of intensities using
// nearest-neighbour point sampling.
//
// Output cells are placed in square-pixel space: column c sits at x = c and
// row r at y = r*aspect, since each row is aspect pixels tall. Scaling those
// back onto the bitmap cancels aspect, leaving c*bw/width and r*bh/height,
// which are computed in integers so that exact positions are never floored
// to the previous pixel. Any index that lands outside the bitmap reads as 0.
//
// An empty bitmap yields a matrix of zeros. The bitmap is only read.
func Sample(b Bitmap, width, height int, aspect float64) ([][]uint8, error) {
	if err := validateDimensions(width, height, aspect); err != nil {
		return nil, err
	}

	grid := make([][]uint8, height)
	for row := range grid {
		grid[row] = make([]uint8, width)
	}
	if b.Empty() {
		return grid, nil
	}

	for row := 0; row < height; row++ {
		bmpY := row * b.Height / height
		for col := 0; col < width; col++ {
			bmpX := col * b.Width / width
			grid[row][col] = b.At(bmpX, bmpY)
		}
	}
	return grid, nil
}
