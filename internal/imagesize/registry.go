package imagesize

// registry is the detection order. Order matters: the first Matched verdict
// wins, and weak signatures (tga, pnm, and the two-byte bmp/jpg marks) only
// work because the stronger ones around them are tried in this sequence.
var registry = []Handler{
	bmpHandler,
	curHandler,
	ddsHandler,
	gifHandler,
	heifHandler,
	icnsHandler,
	icoHandler,
	j2cHandler,
	jp2Handler,
	jpgHandler,
	jxlHandler,
	jxlStreamHandler,
	ktxHandler,
	pngHandler,
	pnmHandler,
	psdHandler,
	svgHandler,
	tgaHandler,
	tiffHandler,
	webpHandler,
}

// Formats returns the registered type tags in detection order.
func Formats() []string {
	tags := make([]string, len(registry))
	for i, h := range registry {
		tags[i] = h.Type
	}
	return tags
}
