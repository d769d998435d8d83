package outputhandler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/CycloneDX/cyclonedx-go"

	"github.com/venslabs/dtrackctl/pkg/dtrack"
)

// NewCycloneDXOutputHandler returns an OutputHandler that treats each result
// message as a CycloneDX BOM and emits it through the CycloneDX encoder.
// Only meaningful for read results.
func NewCycloneDXOutputHandler(w io.Writer) OutputHandler { return &cycloneDXWriter{w: w} }

type cycloneDXWriter struct {
	w    io.Writer
	boms []*cyclonedx.BOM
}

func (c *cycloneDXWriter) HandleResult(r dtrack.Result) error {
	if r.Message == nil {
		return fmt.Errorf("result carries no BOM")
	}
	b, err := json.Marshal(r.Message)
	if err != nil {
		return err
	}
	bom := new(cyclonedx.BOM)
	if err := cyclonedx.NewBOMDecoder(bytes.NewReader(b), cyclonedx.BOMFileFormatJSON).Decode(bom); err != nil {
		return fmt.Errorf("decoding CycloneDX BOM: %w", err)
	}
	if bom.BOMFormat != cyclonedx.BOMFormat {
		return fmt.Errorf("response is not a CycloneDX BOM (bomFormat=%q)", bom.BOMFormat)
	}
	c.boms = append(c.boms, bom)
	return nil
}

func (c *cycloneDXWriter) Close() error {
	for _, bom := range c.boms {
		enc := cyclonedx.NewBOMEncoder(c.w, cyclonedx.BOMFileFormatJSON)
		enc.SetPretty(true)
		if err := enc.Encode(bom); err != nil {
			return err
		}
	}
	c.boms = nil
	return nil
}
