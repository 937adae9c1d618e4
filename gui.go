package main

import (
	"image"
	"log"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/draw"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// show opens a window and displays each image received from frames,
// scaled to fit, until the window is closed or Escape is pressed.
// The last image stays on screen after frames is closed.
func show(title string, frames <-chan image.Image) {
	driver.Main(func(s screen.Screen) {
		w, err := s.NewWindow(&screen.NewWindowOptions{
			Title:  title,
			Width:  640,
			Height: 480,
		})
		if err != nil {
			log.Printf("gui: %v", err)
			return
		}
		defer w.Release()

		type frame struct{ m image.Image }
		go func() {
			for m := range frames {
				w.Send(frame{m})
			}
		}()

		var (
			cur image.Image
			sz  size.Event
			buf screen.Buffer
		)
		defer func() {
			if buf != nil {
				buf.Release()
			}
		}()

		for {
			switch e := w.NextEvent().(type) {
			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}
			case key.Event:
				if e.Code == key.CodeEscape {
					return
				}
			case size.Event:
				sz = e
			case frame:
				cur = e.m
				w.Send(paint.Event{})
			case paint.Event:
				if cur == nil || sz.WidthPx == 0 || sz.HeightPx == 0 {
					continue
				}
				if buf == nil || buf.Size() != sz.Size() {
					if buf != nil {
						buf.Release()
					}
					if buf, err = s.NewBuffer(sz.Size()); err != nil {
						log.Printf("gui: %v", err)
						return
					}
				}
				dst := buf.RGBA()
				draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
				draw.NearestNeighbor.Scale(dst, fit(cur.Bounds(), dst.Bounds()), cur, cur.Bounds(), draw.Src, nil)
				w.Upload(image.Point{}, buf, buf.Bounds())
				w.Publish()
			case error:
				log.Printf("gui: %v", e)
			}
		}
	})
}

// fit returns the largest whole-number scaling of src that fits in dst,
// centred in dst.
func fit(src, dst image.Rectangle) image.Rectangle {
	if src.Empty() {
		return image.Rectangle{}
	}
	k := dst.Dx() / src.Dx()
	if ky := dst.Dy() / src.Dy(); ky < k {
		k = ky
	}
	if k < 1 {
		k = 1
	}
	size := image.Pt(src.Dx()*k, src.Dy()*k)
	min := dst.Min.Add(dst.Size().Sub(size).Div(2))
	return image.Rectangle{min, min.Add(size)}
}
