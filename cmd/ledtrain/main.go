// Command ledtrain encodes one LED frame and prints the resulting pulse
// train, for checking encoder output against a scope capture of the chain
// data line.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"izzymon/monitor/ledenc"
)

func main() {
	var (
		colors     = flag.String("colors", "ffffff", "Comma-separated hex colors (rrggbb), one per LED.")
		brightness = flag.Int("brightness", 100, "Global brightness 0-255.")
		alt        = flag.Bool("alt", false, "Use the alternate bit timings.")
	)
	flag.Parse()

	frame, err := parseFrame(*colors)
	if err != nil {
		fatalf("%v", err)
	}
	if *brightness < 0 || *brightness > 255 {
		fatalf("brightness out of range: %d", *brightness)
	}

	timings := ledenc.TimingsDefault
	if *alt {
		timings = ledenc.TimingsAlt
	}
	enc, err := ledenc.New(len(frame), timings)
	if err != nil {
		fatalf("%v", err)
	}
	enc.SetBrightness(uint8(*brightness))

	pulses, err := enc.Encode(frame)
	if err != nil {
		fatalf("%v", err)
	}

	for i, p := range pulses {
		if p.High == 0 {
			fmt.Printf("%4d  reset  low=%v\n", i, p.Low)
			continue
		}
		bit := 0
		if p.High == timings.T1H {
			bit = 1
		}
		fmt.Printf("%4d  bit=%d  high=%v low=%v\n", i, bit, p.High, p.Low)
	}
}

func parseFrame(s string) ([]ledenc.RGB, error) {
	parts := strings.Split(s, ",")
	frame := make([]ledenc.RGB, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.TrimPrefix(p, "#"))
		if len(p) != 6 {
			return nil, fmt.Errorf("bad color %q: want rrggbb", p)
		}
		v, err := strconv.ParseUint(p, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("bad color %q: %v", p, err)
		}
		frame = append(frame, ledenc.RGB{
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
		})
	}
	return frame, nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ledtrain: "+format+"\n", args...)
	os.Exit(1)
}
