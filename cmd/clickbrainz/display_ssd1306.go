package main

import (
	"fmt"
	"image"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// ssd1306Display drives the OLED panel over I2C. host.Init must have been
// called before opening.
type ssd1306Display struct {
	bus i2c.BusCloser
	dev *ssd1306.Dev
	img *image1bit.VerticalLSB
}

func openSSD1306(cfg DisplayConfig) (*ssd1306Display, error) {
	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus: %w", err)
	}

	opts := ssd1306.DefaultOpts
	opts.W = displayWidth
	opts.H = displayHeight
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("init ssd1306: %w", err)
	}

	return &ssd1306Display{
		bus: bus,
		dev: dev,
		img: image1bit.NewVerticalLSB(dev.Bounds()),
	}, nil
}

func (d *ssd1306Display) Render(f *Frame) error {
	// Repack the row-major frame into the controller's vertical byte layout.
	for i := range d.img.Pix {
		d.img.Pix[i] = 0
	}
	for y := 0; y < displayHeight; y++ {
		for x := 0; x < displayWidth; x++ {
			if f.Pixel(x, y) {
				d.img.SetBit(x, y, image1bit.On)
			}
		}
	}
	return d.dev.Draw(d.dev.Bounds(), d.img, image.Point{})
}

func (d *ssd1306Display) SetBrightness(level byte) error {
	return d.dev.SetContrast(level)
}

func (d *ssd1306Display) Close() error {
	err := d.dev.Halt()
	if cerr := d.bus.Close(); err == nil {
		err = cerr
	}
	return err
}
