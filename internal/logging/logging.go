// Package logging は標準の log パッケージの出力先を切り替えます。
// ターミナルUIが画面を使っている間は、ログをファイルに書き出す必要があります。
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
)

// InitLog は log の出力先を dest に追記モードで切り替え、接頭辞を prefix にします。
// 返された io.Closer を閉じると出力先は標準エラーに戻ります。
func InitLog(dest, prefix string) (io.Closer, error) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, fmt.Errorf("ログファイルのオープンに失敗しました: %w", err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return &logFile{f: f}, nil
}

type logFile struct {
	f *os.File
}

func (l *logFile) Close() error {
	log.SetOutput(os.Stderr)
	log.SetPrefix("")
	log.SetFlags(log.LstdFlags)
	return l.f.Close()
}
