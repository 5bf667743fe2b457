package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"bizledger/internal/command"
	"bizledger/internal/domain"
	"bizledger/internal/normalize"
)

const storeFailureText = "Sorry, something went wrong saving or reading your records. Please try again in a moment."

type Inbound struct {
	From string
	Text string
	Name string
}

type Reply struct {
	To         string
	Text       string
	Command    command.Kind
	BusinessID string
}

// BotService is the dispatch boundary: every inbound message gets a reply.
type BotService struct {
	Businesses *BusinessService
	Recorder   *RecorderService
	Summaries  *SummaryService
}

func NewBotService(b *BusinessService, r *RecorderService, s *SummaryService) *BotService {
	return &BotService{Businesses: b, Recorder: r, Summaries: s}
}

// Handle processes one message. The returned error is non-nil only for
// storage failures, and Reply.Text is always set.
func (s *BotService) Handle(ctx context.Context, in Inbound) (Reply, error) {
	out := Reply{To: in.From, Command: command.KindUnknown}

	biz, err := s.Businesses.Resolve(ctx, in.From, in.Name)
	if err != nil {
		out.Text = storeFailureText
		return out, err
	}
	out.BusinessID = biz.ID

	cmd, err := command.Parse(normalize.Normalize(in.Text), biz.DefaultCurrency)
	if err != nil {
		var ve *command.ValidationError
		var pe *command.ParseError
		switch {
		case errors.As(err, &ve):
			out.Command = ve.Kind
			out.Text = command.Usage(ve.Kind)
		case errors.As(err, &pe):
			out.Command = pe.Kind
			out.Text = fmt.Sprintf("I couldn't read the amount %q. Use a number like 45000, ₦45000, £30 or 30 GBP.\n%s", pe.Token, command.Usage(pe.Kind))
		default:
			out.Text = UnknownText()
		}
		return out, nil
	}
	out.Command = cmd.Kind()

	text, err := s.execute(ctx, biz, cmd)
	if err != nil {
		out.Text = storeFailureText
		return out, fmt.Errorf("%s: %w", cmd.Kind(), err)
	}
	out.Text = text
	return out, nil
}

func (s *BotService) execute(ctx context.Context, biz *domain.Business, cmd command.Command) (string, error) {
	switch c := cmd.(type) {
	case command.Help:
		return HelpText(), nil
	case command.Summary:
		sum, err := s.Summaries.Summarize(ctx, biz, c.Period, ChatTopN)
		if err != nil {
			return "", err
		}
		return SummaryText(sum, Insights(sum)), nil
	case command.Advice:
		sum, err := s.Summaries.Summarize(ctx, biz, c.Period, ChatTopN)
		if err != nil {
			return "", err
		}
		return AdviceText(sum, Insights(sum)), nil
	case command.Sale:
		if err := s.Recorder.RecordSale(ctx, biz, c.Item, c.Qty, c.Price); err != nil {
			return "", err
		}
		return fmt.Sprintf("Sale recorded: %d x %s for %s", c.Qty, c.Item, FormatMoney(c.Price.Amount, c.Price.Currency)), nil
	case command.Expense:
		if err := s.Recorder.RecordExpense(ctx, biz, c.Category, c.Cost); err != nil {
			return "", err
		}
		return fmt.Sprintf("Expense recorded: %s %s", c.Category, FormatMoney(c.Cost.Amount, c.Cost.Currency)), nil
	case command.StockSet:
		if err := s.Recorder.SetStock(ctx, biz, c.Item, c.Qty); err != nil {
			return "", err
		}
		return fmt.Sprintf("Stock set: %s = %d", c.Item, c.Qty), nil
	case command.StockAdd:
		before, after, err := s.Recorder.AdjustStock(ctx, biz, c.Item, c.Delta)
		if errors.Is(err, domain.ErrQuantityLimit) {
			return fmt.Sprintf("Stock not updated: %s would go above %s.\n%s", c.Item, humanize.Comma(domain.MaxQuantity), command.Usage(command.KindStockAdd)), nil
		}
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Stock updated: %s %d -> %d (+%d)", c.Item, before, after, c.Delta), nil
	case command.StockRemove:
		before, after, err := s.Recorder.AdjustStock(ctx, biz, c.Item, -c.Delta)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Stock updated: %s %d -> %d (-%d)", c.Item, before, after, c.Delta), nil
	case command.Unknown:
		return UnknownText(), nil
	default:
		panic(fmt.Sprintf("unhandled command %T", cmd))
	}
}
