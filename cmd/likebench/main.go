// likebench 压测点赞切换：N 个用户并发对同一篇博文各点赞 TOGGLES 次，
// 最后校验点赞数与奇数次切换的用户数一致。
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/blog-service/config"
	"github.com/d60-Lab/blog-service/internal/model"
	"github.com/d60-Lab/blog-service/internal/repository"
	"github.com/d60-Lab/blog-service/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// pct 返回第 p 分位的耗时
func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	defer database.Close(db)
	if err := repository.InitSchema(db); err != nil {
		panic(err)
	}

	N := envInt("N", 1000)
	CONC := envInt("CONC", 8)
	TOGGLES := envInt("TOGGLES", 3)

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	// seed: 1 位作者 + N 位点赞者
	tag := uuid.New().String()[:8]
	author := &model.User{Username: "a" + tag, Email: "a" + tag + "@bench.local", PasswordHash: "x"}
	if err := userRepo.Create(ctx, author); err != nil {
		panic(err)
	}
	post := &model.Post{Title: "bench " + tag, Content: "likebench", UserID: author.ID}
	if err := postRepo.Create(ctx, post); err != nil {
		panic(err)
	}
	users := make([]string, N)
	for i := 0; i < N; i++ {
		name := fmt.Sprintf("b%s%d", tag, i)
		u := &model.User{Username: name, Email: name + "@bench.local", PasswordHash: "x"}
		if err := userRepo.Create(ctx, u); err != nil {
			panic(err)
		}
		users[i] = u.ID
	}

	// 每个用户的切换次数打散到同一队列，制造同一用户的并发切换
	total := N * TOGGLES
	feed := make(chan int, total)
	for r := 0; r < TOGGLES; r++ {
		for i := 0; i < N; i++ {
			feed <- i
		}
	}
	close(feed)

	workers := CONC
	if workers > total {
		workers = total
	}
	recCh := make(chan time.Duration, total)
	errCh := make(chan int, workers)

	t0 := time.Now()
	for w := 0; w < workers; w++ {
		go func() {
			failed := 0
			for i := range feed {
				st := time.Now()
				if _, err := likeRepo.Toggle(ctx, users[i], post.ID); err != nil {
					failed++
					continue
				}
				recCh <- time.Since(st)
			}
			errCh <- failed
		}()
	}
	failed := 0
	for w := 0; w < workers; w++ {
		failed += <-errCh
	}
	close(recCh)
	dur := time.Since(t0)

	recs := make([]time.Duration, 0, total)
	for d := range recCh {
		recs = append(recs, d)
	}

	likes := must(likeRepo.Count(ctx, post.ID))
	expected := int64(0)
	if failed == 0 && TOGGLES%2 == 1 {
		expected = int64(N)
	}

	fmt.Printf("N=%d, CONC=%d, TOGGLES=%d\n", N, CONC, TOGGLES)
	fmt.Printf("Toggle total: %v, per op: %v, p50: %v, p95: %v, p99: %v, failed: %d\n",
		dur, dur/time.Duration(max(len(recs), 1)), pct(recs, 0.50), pct(recs, 0.95), pct(recs, 0.99), failed)
	fmt.Printf("Likes on post: %d (distinct users %d)\n", likes, N)
	if likes > int64(N) {
		fmt.Println("INVARIANT BROKEN: more likes than distinct users")
		os.Exit(1)
	}
	if failed == 0 && likes != expected {
		fmt.Printf("INVARIANT BROKEN: expected %d likes after %d toggles each\n", expected, TOGGLES)
		os.Exit(1)
	}

	// 清理：删除博文会级联删除点赞
	if err := postRepo.Delete(ctx, post.ID); err != nil {
		fmt.Println("cleanup:", err)
	}
}
