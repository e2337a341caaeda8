package device

// MaxMipLevels caps the mip chain length uploaded for any texture.
const MaxMipLevels = 15

// MipLevels returns the number of mip images (base level included) for a
// texture of the given size, halving both dimensions until either reaches 1.
// A dimension of 1 or less yields no mip chain at all.
func MipLevels(width, height int) int {
	if width <= 1 || height <= 1 {
		return 0
	}
	levels := 0
	for width >= 1 && height >= 1 {
		levels++
		width >>= 1
		height >>= 1
	}
	if levels > MaxMipLevels {
		levels = MaxMipLevels
	}
	return levels
}
