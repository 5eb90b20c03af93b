package main

import (
	"context"
	"encoding/json"
	"flag"
	"math/rand"
	"os"
	"strings"
	"time"

	orderreaderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order-reader/v1"
	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// generateCommands creates count commands around basePrice from a small set of traders.
func generateCommands(rng *rand.Rand, count int, pair string, basePrice, spread int64, traders []string) []*orderreaderv1.PlaceOrderCommand {
	cmds := make([]*orderreaderv1.PlaceOrderCommand, 0, count)

	for i := 0; i < count; i++ {
		// 60% limit, 20% market, 10% ioc, 10% fok
		var typ orderreaderv1.CommandType
		switch r := rng.Float64(); {
		case r < 0.6:
			typ = orderreaderv1.CommandLimit
		case r < 0.8:
			typ = orderreaderv1.CommandMarket
		case r < 0.9:
			typ = orderreaderv1.CommandIOC
		default:
			typ = orderreaderv1.CommandFOK
		}

		side := orderv1.SideSell
		if rng.Float64() < 0.5 {
			side = orderv1.SideBuy
		}

		// buys lean below the base price, sells above
		offset := rng.Int63n(spread + 1)
		price := basePrice + offset
		if side == orderv1.SideBuy {
			price = basePrice - offset
		}
		if price <= 0 {
			price = basePrice
		}
		qty := 1 + rng.Int63n(20)

		cmd := &orderreaderv1.PlaceOrderCommand{
			Type:     typ,
			Trader:   traders[rng.Intn(len(traders))],
			Pair:     pair,
			Side:     side,
			Price:    decimal.NewFromInt(price),
			Quantity: decimal.NewFromInt(qty),
		}
		if typ == orderreaderv1.CommandMarket {
			cmd.Price = decimal.Zero
			if side == orderv1.SideBuy {
				// a market buy spends a quote budget
				cmd.Quantity = decimal.NewFromInt(qty * basePrice)
			}
		}
		cmds = append(cmds, cmd)
	}

	return cmds
}

func main() {
	var (
		brokers   = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic     = flag.String("topic", "orders", "Kafka topic name")
		file      = flag.String("file", "", "JSON file with commands (optional, generates commands if not provided)")
		delay     = flag.Duration("delay", 100*time.Millisecond, "Delay between sending commands")
		count     = flag.Int("count", 1000, "Number of commands to generate")
		pair      = flag.String("pair", "WETH/USDC", "Pair symbol")
		basePrice = flag.Int64("base-price", 3945, "Base price in quote units")
		spread    = flag.Int64("price-spread", 50, "Price spread range")
		traders   = flag.String("traders", "alice,bob,carol,dave", "Traders to place commands for (comma-separated)")
	)
	flag.Parse()

	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:        *topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	ctx := context.Background()

	var cmds []*orderreaderv1.PlaceOrderCommand
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Error(err, logger.NewField("action", "read_file"), logger.NewField("file", *file))
			return
		}
		if err := json.Unmarshal(data, &cmds); err != nil {
			log.Error(err, logger.NewField("action", "parse_file"), logger.NewField("file", *file))
			return
		}
		log.Info("Loaded commands from file", logger.NewField("count", len(cmds)), logger.NewField("file", *file))
	} else {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		cmds = generateCommands(rng, *count, *pair, *basePrice, *spread, strings.Split(*traders, ","))
		log.Info("Generated commands", logger.NewField("count", len(cmds)))
	}

	log.Info("Sending commands",
		logger.NewField("brokers", *brokers),
		logger.NewField("topic", *topic),
		logger.NewField("delay", delay.String()),
	)

	sent := make(map[orderreaderv1.CommandType]int)
	for i, cmd := range cmds {
		if err := cmd.Validate(); err != nil {
			log.Warn("Skipping invalid command", logger.NewField("index", i), logger.NewField("error", err.Error()))
			continue
		}
		value, err := cmd.ToBytes()
		if err != nil {
			log.Error(err, logger.NewField("action", "encode_command"), logger.NewField("index", i))
			continue
		}

		// one key keeps every command of a pair on one partition
		msg := kafka.Message{
			Key:   []byte(cmd.Pair),
			Value: value,
			Time:  time.Now(),
		}
		if err := writer.WriteMessages(ctx, msg); err != nil {
			log.Error(err, logger.NewField("action", "write_command"), logger.NewField("index", i))
			continue
		}
		sent[cmd.Type]++

		if (i+1)%100 == 0 || i == len(cmds)-1 {
			log.Info("Progress",
				logger.NewField("sent", i+1),
				logger.NewField("total", len(cmds)),
				logger.NewField("last", string(cmd.Type)+" "+string(cmd.Side)+" "+cmd.Quantity.String()+" @ "+cmd.Price.String()),
			)
		}

		if i < len(cmds)-1 {
			time.Sleep(*delay)
		}
	}

	log.Info("Summary",
		logger.NewField("limit", sent[orderreaderv1.CommandLimit]),
		logger.NewField("market", sent[orderreaderv1.CommandMarket]),
		logger.NewField("ioc", sent[orderreaderv1.CommandIOC]),
		logger.NewField("fok", sent[orderreaderv1.CommandFOK]),
	)
}
