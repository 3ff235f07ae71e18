package dialogue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ticksUntilLoad 点击结局按钮后，推进直到开始加载场景，返回所用帧数
func ticksUntilLoad(t *testing.T, td *testDialogue) int {
	t.Helper()
	for i := 1; i <= 50; i++ {
		td.tick(1)
		if len(td.loader.handles) > 0 {
			return i
		}
	}
	t.Fatalf("scene load never started")
	return 0
}

// TestEndOverlayWaitDuration 测试结束面板的等待时长
func TestEndOverlayWaitDuration(t *testing.T) {
	tests := []struct {
		name      string
		animator  Animator
		wantTicks int
	}{
		// 0.5 秒 / 0.25 秒每帧，加上启动帧
		{name: "速度为2的1秒动画", animator: &fakeAnimator{clip: AnimationClip{Length: 1, Speed: 2}, ok: true}, wantTicks: 3},
		{name: "速度小于1按1计算", animator: &fakeAnimator{clip: AnimationClip{Length: 1, Speed: 0.5}, ok: true}, wantTicks: 5},
		{name: "没有对应触发器", animator: &fakeAnimator{clip: AnimationClip{Length: 3, Speed: 1}, ok: false}, wantTicks: 3},
		{name: "没有动画组件", animator: nil, wantTicks: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			td := newTestDialogue(t, []nodeSpec{{buttons: []DialogueButton{trigger(OutcomeNextScene)}}}, func(o *Options, td *testDialogue) {
				td.end = &fakeOverlay{name: "end", animator: tt.animator, rec: td.rec}
				o.EndOverlay = td.end
			})
			require.NoError(t, td.engine.Start())
			td.settle(t)

			require.True(t, td.buttons[0][0].Click())
			assert.True(t, td.end.visible)
			assert.Equal(t, tt.wantTicks, ticksUntilLoad(t, td))

			td.finish(t)
			assert.Equal(t, []Outcome{OutcomeNextScene}, td.completed)
			assert.False(t, td.end.visible)
		})
	}
}

// TestCustomAnimationTrigger 测试自定义动画触发器名称
func TestCustomAnimationTrigger(t *testing.T) {
	anim := &fakeAnimator{clip: AnimationClip{Length: 0.5, Speed: 1}, ok: true}
	td := newTestDialogue(t, []nodeSpec{{buttons: []DialogueButton{trigger(OutcomeNothing)}}}, func(o *Options, td *testDialogue) {
		o.EndOverlay = &fakeOverlay{name: "end", animator: anim, rec: td.rec}
		o.AnimationTrigger = "FadeIn"
	})
	require.NoError(t, td.engine.Start())
	td.settle(t)

	require.True(t, td.buttons[0][0].Click())
	td.finish(t)
	assert.Equal(t, []string{"FadeIn"}, anim.triggers)
}

// TestOutcomeWithoutOverlaysLoadsImmediately 测试没有结束面板时立即开始加载
func TestOutcomeWithoutOverlaysLoadsImmediately(t *testing.T) {
	td := newTestDialogue(t, []nodeSpec{{buttons: []DialogueButton{trigger(OutcomeRestartLevel)}}}, nil)
	require.NoError(t, td.engine.Start())
	td.settle(t)

	mark := len(td.rec.events)
	require.True(t, td.buttons[0][0].Click())
	require.Len(t, td.loader.handles, 1)
	assert.Equal(t, "level-1", td.loader.handles[0].name)
	// 没有加载面板时，禁止激活后立刻允许激活
	assert.Equal(t, []string{"load:level-1", "allow:level-1:false", "allow:level-1:true"}, td.rec.events[mark:mark+3])

	td.finish(t)
	assert.Equal(t, []Outcome{OutcomeRestartLevel}, td.completed)
}

// TestOutcomeWaitsForLoadCompletion 测试异步加载完成前保持结局状态
func TestOutcomeWaitsForLoadCompletion(t *testing.T) {
	td := newTestDialogue(t, []nodeSpec{{buttons: []DialogueButton{trigger(OutcomeNextScene)}}}, nil)
	td.loader.autoLoaded = false
	require.NoError(t, td.engine.Start())
	td.settle(t)

	require.True(t, td.buttons[0][0].Click())
	require.Len(t, td.loader.handles, 1)

	td.tick(30)
	assert.Equal(t, StateConcluding, td.engine.State())
	assert.Empty(t, td.completed)

	td.loader.handles[0].loaded = true
	td.finish(t)
	assert.Equal(t, []Outcome{OutcomeNextScene}, td.completed)
	assert.True(t, td.player.enabled)
}

// TestOutcomeDegradesWhenSceneUnavailable 测试无法加载场景时依然完成对话
func TestOutcomeDegradesWhenSceneUnavailable(t *testing.T) {
	t.Run("没有下一场景名称", func(t *testing.T) {
		td := newTestDialogue(t, []nodeSpec{{buttons: []DialogueButton{trigger(OutcomeNextScene)}}}, func(o *Options, _ *testDialogue) {
			o.NextScene = ""
		})
		require.NoError(t, td.engine.Start())
		td.settle(t)

		require.True(t, td.buttons[0][0].Click())
		// 没有任何等待，结局在同一帧内完成
		assert.Equal(t, StateIdle, td.engine.State())
		assert.Empty(t, td.loader.handles)
		assert.Equal(t, []Outcome{OutcomeNextScene}, td.completed)
		assert.True(t, td.player.enabled)
	})

	t.Run("开始加载失败", func(t *testing.T) {
		td := newTestDialogue(t, []nodeSpec{{buttons: []DialogueButton{trigger(OutcomeNextScene)}}}, nil)
		td.loader.err = errors.New("scene not registered")
		require.NoError(t, td.engine.Start())
		td.settle(t)

		require.True(t, td.buttons[0][0].Click())
		td.finish(t)
		assert.Equal(t, []Outcome{OutcomeNextScene}, td.completed)
		assert.True(t, td.player.enabled)
		assert.Empty(t, td.visiblePanels())
	})

	t.Run("没有场景加载器", func(t *testing.T) {
		td := newTestDialogue(t, []nodeSpec{{buttons: []DialogueButton{trigger(OutcomeRestartLevel)}}}, func(o *Options, _ *testDialogue) {
			o.Loader = nil
		})
		require.NoError(t, td.engine.Start())
		td.settle(t)

		require.True(t, td.buttons[0][0].Click())
		td.finish(t)
		assert.Equal(t, []Outcome{OutcomeRestartLevel}, td.completed)
		assert.Empty(t, td.loader.handles)
	})
}

// TestNothingOutcomeWaitsMinimum 测试 Nothing 结局只等待固定时长
func TestNothingOutcomeWaitsMinimum(t *testing.T) {
	td := newTestDialogue(t, []nodeSpec{{buttons: []DialogueButton{trigger(OutcomeNothing)}}}, nil)
	require.NoError(t, td.engine.Start())
	td.settle(t)

	require.True(t, td.buttons[0][0].Click())
	td.tick(2)
	assert.Equal(t, StateConcluding, td.engine.State())
	td.tick(1)
	assert.Equal(t, StateIdle, td.engine.State())
	assert.Empty(t, td.loader.handles)
	assert.Equal(t, []Outcome{OutcomeNothing}, td.completed)
}
