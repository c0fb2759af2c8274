package tunnel

var (
	Debug = false // verbose debug output through the orbit logger
	PNG   = false // save a 16-bit PNG per level instead of the animated GIF
	RAW   = false // also dump raw level coordinates next to the image output
)
