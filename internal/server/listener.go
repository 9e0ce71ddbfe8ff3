package server

import (
	"bufio"
	"bytes"
	"io"
	"net"
	"sync"
)

// lenientListener accepts request lines whose target carries raw spaces,
// e.g. "GET /stats?start=2024-01-01 00:00:00 HTTP/1.1", by percent-encoding
// them before net/http parses the request.
type lenientListener struct {
	net.Listener
}

func (l lenientListener) Accept() (net.Conn, error) {
	c, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}
	return &lenientConn{Conn: c}, nil
}

type lenientConn struct {
	net.Conn
	once sync.Once
	r    io.Reader
}

func (c *lenientConn) Read(p []byte) (int, error) {
	c.once.Do(func() {
		br := bufio.NewReader(c.Conn)
		line, err := br.ReadSlice('\n')
		if err != nil {
			// Too long or cut short: let net/http reject it as usual.
			c.r = io.MultiReader(bytes.NewReader(append([]byte(nil), line...)), br)
			return
		}
		c.r = io.MultiReader(bytes.NewReader(fixRequestLine(line)), br)
	})
	return c.r.Read(p)
}

// fixRequestLine encodes spaces inside the request target. Lines that do not
// look like "<method> <target> HTTP/x.y" are returned unchanged.
func fixRequestLine(line []byte) []byte {
	end := len(line)
	for end > 0 && (line[end-1] == '\n' || line[end-1] == '\r') {
		end--
	}
	content := line[:end]

	first := bytes.IndexByte(content, ' ')
	last := bytes.LastIndexByte(content, ' ')
	if first < 0 || first == last || !bytes.HasPrefix(content[last+1:], []byte("HTTP/")) {
		return line
	}
	target := content[first+1 : last]
	if !bytes.Contains(target, []byte{' '}) {
		return line
	}

	var b bytes.Buffer
	b.Write(content[:first+1])
	b.Write(bytes.ReplaceAll(target, []byte{' '}, []byte("%20")))
	b.Write(content[last:])
	b.Write(line[end:])
	return b.Bytes()
}
