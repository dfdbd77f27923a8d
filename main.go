package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	tg "github.com/semog/go-bot-api/v4"
	"github.com/semog/templatebot/formatcode"
	"k8s.io/klog"
)

// clock supplies "now" for date format codes.
var clock formatcode.Clock = formatcode.InLocation(time.Local)

func main() {
	klog.InitFlags(nil)
	if err := godotenv.Load(); err != nil {
		klog.V(1).Infof("no .env file loaded: %v", err)
	}
	cfg, err := parseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		klog.Fatalf("%v", err)
	}
	clock = formatcode.InLocation(cfg.Location)

	klog.Info("Connecting...")
	tg.SetLogger(&klogAdapter{})
	bot, err := tg.NewBotAPI(cfg.Token)
	if err != nil {
		klog.Fatalf("Could not connect to bot: %v", err)
	}
	bot.Debug = cfg.Debug

	st, err := newSQLStore(cfg.DatabaseFile)
	if err != nil {
		klog.Fatalf("%v", err)
	}
	defer st.Close()

	if err := run(bot, st); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
}

var pollsToUpdateConstRate = make(chan int, 10)
var pollsToUpdate = newUniqueChan()

func newUniqueChan() *uniqueChan {
	return &uniqueChan{
		C:   make(chan int, 1000),
		ids: make(map[int]struct{})}
}

// uniqueChan queues poll IDs, dropping an ID that is already queued.
type uniqueChan struct {
	C   chan int
	mu  sync.Mutex
	ids map[int]struct{}
}

func (u *uniqueChan) enqueue(id int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.ids[id]; ok {
		klog.V(1).Infof("Update for poll #%d is already scheduled.", id)
		return
	}
	u.ids[id] = struct{}{}
	u.C <- id
}

func (u *uniqueChan) dequeue() int {
	id := <-u.C
	u.mu.Lock()
	delete(u.ids, id)
	u.mu.Unlock()
	return id
}

func run(bot *tg.BotAPI, st Store) error {
	// fill update channel with constant rate
	go func() {
		for {
			time.Sleep(400 * time.Millisecond)
			pollID := pollsToUpdate.dequeue()
			pollsToUpdateConstRate <- pollID
		}
	}()

	klog.Infof("Authorized on account %s", bot.Self.UserName)

	u := tg.NewUpdate(st.GetUpdateOffset())
	u.Timeout = 60

	updates, err := bot.GetUpdatesChan(u)
	if err != nil {
		return fmt.Errorf("could not prepare update channel: %v", err)
	}

	for {
		select {
		case pollID := <-pollsToUpdateConstRate:
			err := updatePollMessages(bot, pollID, st)
			if err != nil {
				klog.Infof("Could not update poll #%d: %v", pollID, err)
			}
		case update, ok := <-updates:
			if !ok {
				return fmt.Errorf("update channel closed")
			}
			if err := handleUpdate(bot, update, st); err != nil {
				klog.Infof("could not handle update #%d: %v", update.UpdateID, err)
			}
			if err := st.SaveUpdateOffset(update.UpdateID + 1); err != nil {
				klog.Errorf("%v", err)
			}
		}
	}
}

func handleUpdate(bot *tg.BotAPI, update tg.Update, st Store) error {
	stopTimer := newTimer(fmt.Sprintf("update #%d", update.UpdateID))
	defer stopTimer()

	// INLINE QUERIES
	if update.InlineQuery != nil {
		klog.Infof("InlineQuery from [%s]: %s", update.InlineQuery.From.UserName, update.InlineQuery.Query)
		saveUser(st, update.InlineQuery.From)
		if err := handleInlineQuery(bot, update, st); err != nil {
			return fmt.Errorf("could not handle inline query: %v", err)
		}
		return nil
	}

	// poll was inserted into a chat
	if update.ChosenInlineResult != nil {
		pollID, err := strconv.Atoi(update.ChosenInlineResult.ResultID)
		if err != nil {
			return fmt.Errorf("could not parse pollID: %v", err)
		}
		if err := st.AddInlineMsgToPoll(pollID, update.ChosenInlineResult.InlineMessageID); err != nil {
			return fmt.Errorf("could not add inline message to poll: %v", err)
		}
		return nil
	}

	// CALLBACK QUERIES
	if update.CallbackQuery != nil {
		klog.Infof("CallbackQuery from [%s]: %s", update.CallbackQuery.From.UserName, update.CallbackQuery.Data)
		saveUser(st, update.CallbackQuery.From)
		if err := handleCallbackQuery(bot, update, st); err != nil {
			return fmt.Errorf("could not handle callback query: %v", err)
		}
		return nil
	}

	if update.Message == nil || update.Message.From == nil {
		return nil
	}
	saveUser(st, update.Message.From)

	// Messages
	klog.Infof("Message from [%s] %s", update.Message.From.UserName, update.Message.Text)

	// Conversations
	if err := handleDialog(bot, update, st); err != nil {
		return fmt.Errorf("could not handle dialog: %v", err)
	}
	return nil
}

func saveUser(st Store, u *tg.User) {
	if u == nil {
		return
	}
	if err := st.SaveUser(u); err != nil {
		klog.Infof("could not save user: %v", err)
	}
}
