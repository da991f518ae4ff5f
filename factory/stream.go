package factory

import (
	"github.com/allape/sysevents/capture/stream/serialport"
	"github.com/allape/sysevents/config"
)

func StreamFromConfig(conf config.Config) (*serialport.Source, error) {
	switch conf.Stream.Type {
	case config.StreamNone, "":
		return nil, nil
	case config.StreamSerialPort:
		l.Info().Println("stream driver is serial port:", conf.Stream.Src)
		baud, err := config.StreamExt(conf.Stream.Ext).GetBaud(serialport.DefaultBaud)
		if err != nil {
			return nil, err
		}
		return serialport.New(conf.Stream.Src, baud), nil
	default:
		return nil, unknownDriver("stream", string(conf.Stream.Type))
	}
}
