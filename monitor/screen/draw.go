package screen

import (
	"tinygo.org/x/tinyfont"

	"izzymon/monitor/uistate"
)

// drawZone paints a zone's background (highlighted or plain) and border.
func drawZone(d Surface, z TextZone, highlight bool) error {
	fill := colorBG
	if highlight {
		fill = colorActive
	}
	if err := d.FillRectangle(z.X, z.Y, z.W, z.H, fill); err != nil {
		return err
	}
	if z.Border {
		return strokeRectangle(d, z.X, z.Y, z.W, z.H, colorBorder)
	}
	return nil
}

// drawTextInZone redraws a zone with a centered label.
func drawTextInZone(d Surface, z TextZone, text string, highlight bool) error {
	if err := drawZone(d, z, highlight); err != nil {
		return err
	}
	if text == "" {
		return nil
	}

	_, w := tinyfont.LineWidth(z.Font, text)
	x := z.X + (z.W-int16(w))/2
	y := z.Y + z.H/2 + int16(z.Font.GetYAdvance())/3
	tinyfont.WriteLine(d, z.Font, x, y, text, colorText)
	return nil
}

// drawLinesInZone redraws a zone with left-aligned lines.
func drawLinesInZone(d Surface, z TextZone, lines []string) error {
	if err := drawZone(d, z, false); err != nil {
		return err
	}
	adv := int16(z.Font.GetYAdvance())
	y := z.Y + adv + 2
	for _, line := range lines {
		if y >= z.Y+z.H {
			break
		}
		tinyfont.WriteLine(d, z.Font, z.X+4, y, line, colorText)
		y += adv + 2
	}
	return nil
}

// drawScreen does the shared full redraw: background, header, content,
// three button zones with the selected one highlighted, then Display.
func drawScreen(d Surface, header, content string, contentLines []string, labels [3]string, active int) error {
	w, h := d.Size()
	if err := d.FillRectangle(0, 0, w, h, colorBG); err != nil {
		return err
	}

	zones := DefaultZones()
	if err := drawTextInZone(d, zones[ZoneHeader], header, false); err != nil {
		return err
	}
	if contentLines != nil {
		if err := drawLinesInZone(d, zones[ZoneContent], contentLines); err != nil {
			return err
		}
	} else {
		if err := drawTextInZone(d, zones[ZoneContent], content, false); err != nil {
			return err
		}
	}
	for i := 0; i < 3; i++ {
		if err := drawTextInZone(d, zones[ZoneButton0+i], labels[i], active == i); err != nil {
			return err
		}
	}
	return d.Display()
}

func headerLine(s uistate.Snapshot) string {
	if s.WiFiConnected {
		return s.UserName + " [up]"
	}
	return s.UserName + " [--]"
}

// DrawMain fully redraws the main screen.
func DrawMain(d Surface, s uistate.Snapshot) error {
	return drawScreen(d, headerLine(s), s.StatusLine, nil, labelsMain, s.ActiveButton)
}

// DrawTrip fully redraws the trip screen.
func DrawTrip(d Surface, s uistate.Snapshot) error {
	return drawScreen(d, "Trip Planner", "No trips yet", nil, labelsTrip, s.ActiveButton)
}

// DrawSettings fully redraws the settings screen.
func DrawSettings(d Surface, s uistate.Snapshot) error {
	wifi := "WiFi: down"
	if s.WiFiConnected {
		wifi = "WiFi: up"
	}
	lines := []string{wifi, "LED: med", "User: " + s.UserName}
	return drawScreen(d, "Settings", "", lines, labelsSettings, s.ActiveButton)
}
