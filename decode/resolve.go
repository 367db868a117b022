package decode

// Resolve converts a raw channel sample into its displayed value by
// applying the channel's linear calibration. It is pure and total: every
// raw bit pattern yields a defined result.
func Resolve(raw int64, scale, offset float64) float64 {
	return float64(raw)*scale + offset
}
