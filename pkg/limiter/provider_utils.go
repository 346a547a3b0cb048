package limiter

import (
	"io"
)

func closeProvider(p any) error {
	if c, ok := p.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
