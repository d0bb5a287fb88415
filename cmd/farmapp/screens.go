package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"chickhealth-client-go/internal/api"
)

const analyzeFallback = "Không thể phân tích ảnh."

func (a *app) me(ctx context.Context) error {
	user := a.session.User()
	fmt.Printf("Họ tên:  %s\n", user.FullName)
	fmt.Printf("Email:   %s\n", user.Email)
	fmt.Printf("SĐT:     %s\n", user.Phone)
	if user.IsSuperuser {
		fmt.Println("Vai trò: quản trị viên")
	}
	return nil
}

func (a *app) stats(ctx context.Context) error {
	stats, err := a.client.MyStats(ctx)
	if err != nil {
		return fmt.Errorf("%s", api.ErrorDetail(err, "Không thể tải thống kê."))
	}
	fmt.Printf("Tổng lượt quét:  %d\n", stats.TotalScans)
	fmt.Printf("Ca có bệnh:      %d\n", stats.SickCases)
	fmt.Printf("Độ chính xác:    %.1f%%\n", stats.Accuracy)
	return nil
}

func (a *app) history(ctx context.Context) error {
	entries, err := a.client.MyHistory(ctx)
	if err != nil {
		return fmt.Errorf("%s", api.ErrorDetail(err, "Không thể tải lịch sử."))
	}
	if len(entries) == 0 {
		fmt.Println("Chưa có lịch sử chẩn đoán.")
		return nil
	}
	for _, entry := range entries {
		marker := "Bình thường"
		if entry.Status == "Sick" {
			marker = "Phát hiện bất thường"
		}
		fmt.Printf("%s  %-10s %-20s %3d%%  %s\n",
			entry.CreatedAt, entry.Type, entry.Result,
			api.ConfidencePercent(entry.Confidence), marker)
		if entry.ImageURL != "" {
			fmt.Printf("    ảnh: %s\n", a.client.ResolveAsset(entry.ImageURL))
		}
	}
	return nil
}

func (a *app) knowledge(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("knowledge", flag.ExitOnError)
	query := fs.String("q", "", "search")
	fs.Parse(args)

	entries, err := a.client.Knowledge(ctx)
	if err != nil {
		return fmt.Errorf("%s", api.ErrorDetail(err, "Không thể tải cẩm nang."))
	}
	shown := 0
	for _, entry := range entries {
		if *query != "" && !strings.Contains(strings.ToLower(entry.Title), strings.ToLower(*query)) {
			continue
		}
		fmt.Printf("== [%s] %s\n", entry.Category, entry.Title)
		fmt.Println(entry.Content)
		if entry.Source != "" {
			fmt.Printf("(nguồn: %s)\n", entry.Source)
		}
		fmt.Println()
		shown++
	}
	if shown == 0 {
		fmt.Println("Không tìm thấy bài viết phù hợp.")
	}
	return nil
}

func (a *app) classify(ctx context.Context, args []string) error {
	image, err := openImage(args, false)
	if err != nil {
		return err
	}
	defer image.Data.Close()

	fmt.Println("Đang phân tích...")
	result, err := a.client.Classify(ctx, image.Name, image.Data)
	if err != nil {
		a.log.Debug("classify failed", zap.Error(err))
		return fmt.Errorf("%s", analyzeFallback)
	}
	renderClassification(a.client, result)
	return nil
}

func (a *app) detect(ctx context.Context, args []string) error {
	image, err := openImage(args, false)
	if err != nil {
		return err
	}
	defer image.Data.Close()

	fmt.Println("Đang phân tích...")
	result, err := a.client.Detect(ctx, image.Name, image.Data)
	if err != nil {
		a.log.Debug("detect failed", zap.Error(err))
		return fmt.Errorf("%s", analyzeFallback)
	}

	fmt.Println("KẾT QUẢ GIÁM SÁT ĐÀN")
	fmt.Printf("Tổng số gà:   %d\n", result.TotalChickens)
	fmt.Printf("Khỏe mạnh:    %d\n", result.HealthyCount)
	fmt.Printf("Có dấu hiệu:  %d\n", result.SickCount)
	if result.Alert != "" {
		fmt.Printf("⚠ %s\n", result.Alert)
	}
	return nil
}

func (a *app) video(ctx context.Context, args []string) error {
	video, err := openImage(args, true)
	if err != nil {
		return err
	}
	defer video.Data.Close()

	fmt.Println("Đang xử lý video, việc này có thể mất vài phút...")
	result, err := a.client.VideoAnalyze(ctx, video.Name, video.Data)
	if err != nil {
		return fmt.Errorf("%s", "Không thể phân tích video.")
	}

	fmt.Println("KẾT QUẢ PHÂN TÍCH VIDEO")
	fmt.Printf("Số gà tối đa:      %d\n", result.MaxTotalChickens)
	fmt.Printf("Gà ốm tối đa:      %d\n", result.MaxSickChickens)
	if result.Alert != "" {
		fmt.Printf("⚠ %s\n", result.Alert)
	}
	if result.GifURL != "" {
		fmt.Printf("Ảnh động: %s\n", a.client.ResolveAsset(result.GifURL))
	}
	return nil
}

func renderClassification(client *api.Client, result api.ClassificationResult) {
	fmt.Println("KẾT QUẢ PHÂN TÍCH")
	switch result.Verdict() {
	case api.VerdictHealthy:
		fmt.Println("Trạng thái: KHỎE MẠNH")
	case api.VerdictSick:
		fmt.Println("Trạng thái: CÓ BỆNH")
	}

	name := result.Disease
	if result.DiseaseDetail != nil && result.DiseaseDetail.NameVI != "" {
		name = result.DiseaseDetail.NameVI
	}
	fmt.Printf("Chẩn đoán:  %s\n", name)
	fmt.Printf("Độ chính xác AI: %d%%\n", api.ConfidencePercent(result.Confidence))

	detail := result.DiseaseDetail
	if detail == nil {
		if result.Recommendation != "" {
			fmt.Printf("Khuyến nghị: %s\n", result.Recommendation)
		}
		return
	}
	if detail.Symptoms != "" {
		fmt.Printf("Triệu chứng: %s\n", detail.Symptoms)
	}
	if detail.Cause != "" {
		fmt.Printf("Nguyên nhân: %s\n", detail.Cause)
	}
	if detail.Prevention != "" {
		fmt.Printf("Phòng bệnh:  %s\n", detail.Prevention)
	}
	if len(detail.TreatmentSteps) > 0 {
		fmt.Println("Phác đồ điều trị:")
		for _, step := range detail.TreatmentSteps {
			fmt.Printf("  Bước %d: %s\n", step.StepOrder, step.Description)
			for _, med := range step.Medicines {
				fmt.Printf("    - %s (%s): %s\n", med.Name, med.ActiveIngredient, med.Dosage)
			}
		}
	}
}
